package main

import (
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/folio/document"
	"github.com/sahilm/fuzzy"
	"github.com/spf13/cobra"
)

var (
	findLimit int

	findCmd = &cobra.Command{
		Use:     "find SOURCE QUERY",
		Short:   "Find sections and index terms",
		Long:    paragraph(fmt.Sprintf("\nPaginate SOURCE and %s section titles and index terms matching QUERY, printing the pages they are on.", keyword("fuzzy find"))),
		Example: formatBlock("folio find draft.md security\nfolio find -n 3 draft.md 'sec cons'"),
		Args:    cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, _, err := paginateArg(cmd, args[0])
			if err != nil {
				return err
			}
			matches := findTargets(doc).find(args[1], findLimit)
			if len(matches) == 0 {
				return fmt.Errorf("no matches for %q", args[1])
			}
			return writeMatches(cmd.OutOrStdout(), matches)
		},
	}
)

func init() {
	findCmd.Flags().IntVarP(&findLimit, "limit", "n", 10, "maximum number of results, 0 for all")
}

// target is something a reader may look up in a document.
type target struct {
	kind  string
	text  string
	pages []int
}

type targets []target

// String implements fuzzy.Source.
func (t targets) String(i int) string { return t[i].text }

// Len implements fuzzy.Source.
func (t targets) Len() int { return len(t) }

// findTargets lists the headings and index terms of a paginated document.
func findTargets(doc *document.Document) targets {
	var t targets
	for _, h := range doc.Headings() {
		t = append(t, target{kind: "section", text: h.Label(), pages: []int{h.Page}})
	}
	for _, e := range doc.IndexEntries() {
		t = append(t, target{kind: "index", text: e.Term, pages: e.Pages})
		subs := make([]string, 0, len(e.Subterms))
		for s := range e.Subterms {
			subs = append(subs, s)
		}
		slices.Sort(subs)
		for _, s := range subs {
			t = append(t, target{kind: "index", text: e.Term + ", " + s, pages: e.Subterms[s]})
		}
	}
	return t
}

// find returns the best matches for query, at most limit unless limit is 0.
func (t targets) find(query string, limit int) []target {
	var found []target
	for _, m := range fuzzy.FindFrom(query, t) {
		if limit > 0 && len(found) == limit {
			break
		}
		found = append(found, t[m.Index])
	}
	return found
}

func writeMatches(w io.Writer, matches []target) error {
	for _, m := range matches {
		if _, err := fmt.Fprintf(w, "%-8s  %-7s  %s\n", pageList(m.pages), m.kind, m.text); err != nil {
			return err
		}
	}
	return nil
}

func pageList(pages []int) string {
	pages = slices.Compact(slices.Sorted(slices.Values(pages)))
	nums := make([]string, len(pages))
	for i, p := range pages {
		nums[i] = strconv.Itoa(p)
	}
	return strings.Join(nums, ",")
}
