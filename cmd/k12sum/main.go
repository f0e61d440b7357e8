// Command k12sum prints KangarooTwelve digests of files or standard input.
package main

import (
	"encoding/hex"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/zeebo/k12"
)

var (
	outLen      = flag.Int("length", 32, "output length in bytes")
	custom      = flag.String("custom", "", "customization string")
	runSelfTest = flag.Bool("selftest", false, "run the built-in self-test and exit")
)

func main() {
	flag.Parse()

	if *runSelfTest {
		if err := k12.SelfTest(); err != nil {
			fmt.Fprintln(os.Stderr, "k12sum: self-test failed:", err)
			os.Exit(1)
		}
		fmt.Println("ok")
		return
	}

	if *outLen <= 0 {
		fmt.Fprintln(os.Stderr, "k12sum: -length must be positive")
		os.Exit(2)
	}

	args := flag.Args()
	if len(args) == 0 {
		if err := sumReader(os.Stdin, "-", os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "k12sum:", err)
			os.Exit(1)
		}
		return
	}

	status := 0
	for _, name := range args {
		if err := sumFile(name, os.Stdout); err != nil {
			fmt.Fprintln(os.Stderr, "k12sum:", err)
			status = 1
		}
	}
	os.Exit(status)
}

func sumFile(name string, w io.Writer) error {
	f, err := os.Open(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return sumReader(f, name, w)
}

func sumReader(r io.Reader, name string, w io.Writer) error {
	h := k12.NewCustom([]byte(*custom))
	if _, err := io.Copy(h, r); err != nil {
		return errors.New(name + ": " + err.Error())
	}

	out := make([]byte, *outLen)
	if _, err := h.Read(out); err != nil {
		return err
	}

	_, err := fmt.Fprintf(w, "%s  %s\n", hex.EncodeToString(out), name)
	return err
}
