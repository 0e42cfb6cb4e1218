// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package categorize

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/pdiddy/litreview/pkg/types"
)

// ErrAborted is returned when input ends before every prompt is answered.
var ErrAborted = errors.New("recategorization aborted: input closed")

// Recategorize prompts on out for a new label for every application or
// methodology category still set to "Other", reading 1-based choices from
// in. Choices are the sorted distinct labels present in papers before any
// change. Invalid input re-prompts. Papers are modified in place; the
// number of labels changed is returned even when input ends early.
func Recategorize(papers []types.CategorizedPaper, in io.Reader, out io.Writer) (int, error) {
	applications, methodologies := Categories(papers)
	scanner := bufio.NewScanner(in)
	changed := 0

	for i := range papers {
		p := &papers[i]
		if p.ApplicationCategory == types.DefaultCategory {
			label, err := prompt(scanner, out, p, "application", applications)
			if err != nil {
				return changed, err
			}
			p.ApplicationCategory = label
			changed++
		}
		if p.MethodologyCategory == types.DefaultCategory {
			label, err := prompt(scanner, out, p, "methodology", methodologies)
			if err != nil {
				return changed, err
			}
			p.MethodologyCategory = label
			changed++
		}
	}
	return changed, nil
}

func prompt(scanner *bufio.Scanner, out io.Writer, p *types.CategorizedPaper, kind string, choices []string) (string, error) {
	fmt.Fprintf(out, "Title: %s\n", p.Title)
	fmt.Fprintf(out, "Abstract: %s\n", p.Abstract)
	fmt.Fprintf(out, "Current %s category: %s\n", kind, types.DefaultCategory)
	for i, c := range choices {
		fmt.Fprintf(out, "%d. %s\n", i+1, c)
	}

	for {
		fmt.Fprintf(out, "Select a new %s category (1-%d): ", kind, len(choices))
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("reading choice: %w", err)
			}
			return "", ErrAborted
		}
		n, err := strconv.Atoi(strings.TrimSpace(scanner.Text()))
		if err != nil {
			fmt.Fprintln(out, "Invalid input. Please enter a number.")
			continue
		}
		if n < 1 || n > len(choices) {
			fmt.Fprintln(out, "Invalid choice. Please try again.")
			continue
		}
		return choices[n-1], nil
	}
}
