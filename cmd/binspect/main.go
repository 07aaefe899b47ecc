package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/nasselk/binarypack"
)

func main() {
	var (
		inFile      = flag.String("in", "", "Path to the binary stream to inspect")
		schema      = flag.String("schema", "", "Comma-separated field tokens (u16,bits:3,str:p16,varint,...)")
		hexDump     = flag.Bool("hex", false, "Print a hex dump of the stream and exit")
		interactive = flag.Bool("i", false, "Interactive mode with TUI")
		verbose     = flag.Bool("v", false, "Enable debug logging")
	)
	flag.Parse()

	if *inFile == "" {
		fmt.Fprintln(os.Stderr, "Usage: binspect -in <file> -schema <tokens>")
		fmt.Fprintln(os.Stderr, "       binspect -in <file> -hex")
		fmt.Fprintln(os.Stderr, "       binspect -in <file> -i  (interactive mode)")
		fmt.Fprintln(os.Stderr, "\nField tokens:")
		fmt.Fprintln(os.Stderr, "  "+strings.Join(tokenHelp, "\n  "))
		os.Exit(1)
	}

	if *verbose {
		logger, err := zap.NewDevelopment()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		defer logger.Sync()
		binarypack.SetLogger(logger)
	}

	data, err := os.ReadFile(*inFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *interactive {
		if !term.IsTerminal(int(os.Stdout.Fd())) {
			fmt.Fprintln(os.Stderr, "Error: interactive mode requires a terminal")
			os.Exit(1)
		}
		if err := runInteractive(*inFile, data); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if *hexDump {
		fmt.Print(hexdump(data))
		return
	}

	if *schema == "" {
		fmt.Fprintln(os.Stderr, "Error: provide -schema, -hex or -i")
		os.Exit(1)
	}

	if err := inspect(data, *schema); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func inspect(data []byte, schema string) error {
	r := binarypack.NewReader(data)
	fmt.Printf("Stream: %d bytes\n\n", len(data))
	for _, token := range strings.Split(schema, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		at := fmt.Sprintf("%d", r.Offset())
		value, err := decodeField(r, token)
		if err != nil {
			return fmt.Errorf("field %q: %w", token, err)
		}
		fmt.Printf("%6s  %-10s %s\n", at, token, value)
	}
	fmt.Printf("\n%d bits unread\n", r.RemainingBits())
	return nil
}

func hexdump(data []byte) string {
	var b strings.Builder
	for base := 0; base < len(data); base += 16 {
		fmt.Fprintf(&b, "%08x  ", base)
		for i := 0; i < 16; i++ {
			if base+i < len(data) {
				fmt.Fprintf(&b, "%02x ", data[base+i])
			} else {
				b.WriteString("   ")
			}
			if i == 7 {
				b.WriteByte(' ')
			}
		}
		b.WriteString(" |")
		for i := 0; i < 16 && base+i < len(data); i++ {
			c := data[base+i]
			if c < 0x20 || c > 0x7e {
				c = '.'
			}
			b.WriteByte(c)
		}
		b.WriteString("|\n")
	}
	return b.String()
}
