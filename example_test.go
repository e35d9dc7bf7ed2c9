package slibtools_test

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	slibtools "github.com/barbiani/slib-tools"
)

// ExampleDecode decodes a short 10 baud capture of the letter 'A'.
func ExampleDecode() {
	capture := `Time[s],UART_TX
0.0,1
1.0,0
1.1,1
1.2,0
1.7,1
1.8,0
1.9,1
`

	cfg := slibtools.DefaultConfig()
	cfg.Channel = "UART_TX"
	cfg.BaudRate = 10

	var out bytes.Buffer
	if err := slibtools.Decode(context.Background(), cfg, strings.NewReader(capture), &out); err != nil {
		fmt.Printf("decode failed: %v\n", err)
		return
	}
	fmt.Print(out.String())

	// Output:
	// timestamp(s),byte,isFrameValid,subascii
	// 1.0,65,1,A
}

// ExampleDefaultConfig shows the defaults the pipeline starts from.
func ExampleDefaultConfig() {
	cfg := slibtools.DefaultConfig()
	fmt.Printf("bits: %d\n", cfg.DataBits)
	fmt.Printf("tail: %.0fs\n", cfg.TailLength)
	fmt.Printf("debounce: %v\n", cfg.Debounce)

	// Output:
	// bits: 8
	// tail: 10s
	// debounce: 100ms
}
