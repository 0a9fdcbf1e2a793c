package main

import (
	"bufio"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"unicode/utf8"

	"github.com/zephyrtronium/keycalc"
	"github.com/zephyrtronium/keycalc/keymap"
)

func main() {
	log.SetFlags(0)
	var (
		inname, mapname, verb string
		eval, echo            bool
		prec                  int
	)
	flag.StringVar(&inname, "in", "", "input file (default stdin if no args given)")
	flag.StringVar(&mapname, "keymap", "", "YAML file of key bindings to use over the defaults")
	flag.BoolVar(&eval, "e", false, "evaluate input lines as whole expressions instead of keys")
	flag.StringVar(&verb, "fmt", "%g", "result formatting string with -e")
	flag.IntVar(&prec, "p", keycalc.DefaultPrec, "precision of calculations in bits with -e")
	flag.BoolVar(&echo, "echo", false, "print parse trees with -e")
	flag.Parse()
	if prec <= 0 {
		log.Fatalf("precision (%d) must be positive", prec)
	}

	lines, err := inputs(inname, flag.Args())
	if err != nil {
		log.Fatal(err)
	}

	if eval {
		ctx := keycalc.NewContext(keycalc.Prec(uint(prec)))
		verb += "\n"
		for _, line := range lines {
			evaluate(ctx, line, verb, echo)
		}
		return
	}

	km, err := keymap.LoadFile(mapname)
	if err != nil {
		log.Fatal(err)
	}
	e := keycalc.NewEngine()
	for _, line := range lines {
		keys, err := splitKeys(line)
		if err != nil {
			log.Println(err)
			continue
		}
		for _, k := range keys {
			if !km.Press(e, k) {
				log.Printf("unbound key %q", k)
			}
		}
		d := e.Render()
		if d.Previous != "" {
			fmt.Println(d.Previous)
		}
		fmt.Println(d.Current)
	}
}

// evaluate parses and evaluates one expression, printing its result or error.
func evaluate(ctx *keycalc.Context, src, verb string, echo bool) {
	a, err := keycalc.ParseString(src)
	if err != nil {
		fmt.Println(err)
		return
	}
	if echo {
		fmt.Printf("%v : ", a)
	}
	r := ctx.Eval(a)
	if r == nil {
		fmt.Println(ctx.Err())
		return
	}
	fmt.Printf(verb, r)
}

// inputs returns the lines to process: the args if there are any, and the
// lines of the input file or stdin.
func inputs(inname string, args []string) ([]string, error) {
	in, err := infile(inname, len(args) == 0)
	if err != nil {
		return nil, err
	}
	lines := append([]string(nil), args...)
	if in == nil {
		return lines, nil
	}
	defer in.Close()
	sc := bufio.NewScanner(in)
	for sc.Scan() {
		lines = append(lines, sc.Text())
	}
	return lines, sc.Err()
}

func infile(inname string, std bool) (io.ReadCloser, error) {
	switch {
	case inname != "" && inname != "-":
		return os.Open(inname)
	case inname == "-", std:
		return io.NopCloser(os.Stdin), nil
	}
	return nil, nil
}

// splitKeys splits a line of input into key names. Each character is a key,
// except that "{Name}" names a key like Enter and "{{" is the key "{".
func splitKeys(line string) ([]string, error) {
	var keys []string
	for line != "" {
		if !strings.HasPrefix(line, "{") {
			_, sz := utf8.DecodeRuneInString(line)
			keys = append(keys, line[:sz])
			line = line[sz:]
			continue
		}
		if strings.HasPrefix(line, "{{") {
			keys = append(keys, "{")
			line = line[2:]
			continue
		}
		name, rest, ok := strings.Cut(line[1:], "}")
		if !ok {
			return nil, fmt.Errorf("unterminated key name in %q", line)
		}
		if name == "" {
			return nil, errors.New("empty key name")
		}
		keys = append(keys, name)
		line = rest
	}
	return keys, nil
}
