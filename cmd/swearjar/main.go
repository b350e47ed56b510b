// Command swearjar filters profanity from standard input, line by line.
//
//	swearjar [-words list.json] [-placeholder '#'] < comments.txt
//	swearjar -check < comments.txt
//
// With -check it prints the offending lines instead and exits with status 1
// when any line is profane.
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"

	log "github.com/sirupsen/logrus"

	"swearjar/pkg/swearjar"
	"swearjar/pkg/wordlist"
)

func main() {
	var (
		wordListPath string
		extraWords   string
		placeholder  string
		boundary     bool
		specials     bool
		foldMarks    bool
		check        bool
		logLevel     string
	)

	flag.StringVar(&wordListPath, "words", "", "Path to JSON or TOML word list, the embedded list is used if empty")
	flag.StringVar(&extraWords, "extra", "", "Comma separated words added to the blacklist")
	flag.StringVar(&placeholder, "placeholder", "*", "Replacement character")
	flag.BoolVar(&boundary, "boundary", true, "Require word boundaries around partial matches")
	flag.BoolVar(&specials, "specials", true, "Match multi-word phrases")
	flag.BoolVar(&foldMarks, "fold", false, "Strip accents before matching")
	flag.BoolVar(&check, "check", false, "Report profane lines instead of cleaning them")
	flag.StringVar(&logLevel, "log", "warn", "Log level: debug, info, warn, error.")
	flag.Parse()

	level, err := log.ParseLevel(logLevel)
	if err != nil {
		log.Fatalf("[swearjar] invalid log level %q: %v", logLevel, err)
	}
	log.SetLevel(level)
	log.SetOutput(os.Stderr)

	words := wordlist.Default()
	if wordListPath != "" {
		words, err = wordlist.Load(wordListPath)
		if err != nil {
			log.Fatalf("[swearjar] failed to load word list %s: %v", wordListPath, err)
		}
	}

	if utf8.RuneCountInString(placeholder) != 1 {
		log.Fatalf("[swearjar] placeholder must be a single character, got %q", placeholder)
	}
	r, _ := utf8.DecodeRuneInString(placeholder)

	filter, err := swearjar.New(
		swearjar.WithWordList(words),
		swearjar.WithPlaceholder(r),
		swearjar.WithBoundaryMode(boundary),
		swearjar.WithSpecials(specials),
		swearjar.WithFoldMarks(foldMarks),
	)
	if err != nil {
		log.Fatalf("[swearjar] failed to create filter: %v", err)
	}
	if strings.TrimSpace(extraWords) != "" {
		if err := filter.AddWords(extraWords); err != nil {
			log.Fatalf("[swearjar] failed to add words: %v", err)
		}
	}
	log.Debugf("[swearjar] filter ready: %d words, %d phrases", len(filter.Blacklist()), len(filter.Phrases()))

	var profane int
	if check {
		profane, err = checkLines(filter, os.Stdin, os.Stdout)
	} else {
		err = cleanLines(filter, os.Stdin, os.Stdout)
	}
	if err != nil {
		log.Fatalf("[swearjar] %v", err)
	}
	if profane > 0 {
		os.Exit(1)
	}
}

// maxLineSize bounds a single input line.
const maxLineSize = 16 << 20

func newScanner(in io.Reader) *bufio.Scanner {
	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineSize)
	return sc
}

func cleanLines(filter *swearjar.Filter, in io.Reader, out io.Writer) error {
	w := bufio.NewWriter(out)
	sc := newScanner(in)
	for sc.Scan() {
		fmt.Fprintln(w, filter.Clean(sc.Text()))
	}
	if err := sc.Err(); err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}
	return w.Flush()
}

// checkLines writes "line:match" for every profane line and returns how many
// were found.
func checkLines(filter *swearjar.Filter, in io.Reader, out io.Writer) (int, error) {
	w := bufio.NewWriter(out)
	sc := newScanner(in)

	var n, found int
	for sc.Scan() {
		n++
		if m, ok := filter.Check(sc.Text()); ok {
			found++
			fmt.Fprintf(w, "%d:%s\n", n, m.Entry)
		}
	}
	if err := sc.Err(); err != nil {
		return found, fmt.Errorf("failed to read input: %w", err)
	}
	return found, w.Flush()
}
