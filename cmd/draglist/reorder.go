package main

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/vango-dev/draglist/internal/errors"
	"github.com/vango-dev/draglist/pkg/reorder"
)

func reorderCmd() *cobra.Command {
	var (
		drag    string
		over    string
		asJSON  bool
		preview bool
	)

	cmd := &cobra.Command{
		Use:   "reorder --drag ITEM --over ITEM ITEMS...",
		Short: "Print the order produced by one drop",
		Long: `Apply a single drag-and-drop to ITEMS and print the result.

The dragged item takes the slot of the hovered item: a forward move
lands just after it and a backward move just before it.

Examples:
  draglist reorder --drag c --over a a b c     # c a b
  draglist reorder --drag a --over c a b c d   # b c a d
  draglist reorder --drag a --over c --preview a b c`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runReorder(cmd, args, drag, over, asJSON, preview)
		},
	}

	cmd.Flags().StringVar(&drag, "drag", "", "Item being dragged")
	cmd.Flags().StringVar(&over, "over", "", "Item the drag is released over")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the order as a JSON array")
	cmd.Flags().BoolVar(&preview, "preview", false, "Print each item's preview class before the drop")
	return cmd
}

func runReorder(cmd *cobra.Command, items []string, drag, over string, asJSON, preview bool) error {
	if drag == "" || over == "" || len(items) == 0 {
		return errors.New(errors.CodeCLIArgs).
			WithDetail("reorder needs --drag, --over and at least one item").
			WithExample("draglist reorder --drag c --over a a b c")
	}
	if err := reorder.Validate(items); err != nil {
		var dup *reorder.DuplicateItemError
		if stderrors.As(err, &dup) {
			return errors.New(errors.CodeCLIArgs).
				WithDetail(fmt.Sprintf("item %q appears twice", items[dup.Index])).
				Wrap(err)
		}
		return errors.New(errors.CodeCLIArgs).Wrap(err)
	}

	for _, name := range []string{drag, over} {
		if !reorder.Contains(items, name) {
			return errors.New(errors.CodeCLIUnknownItem).
				WithDetail(fmt.Sprintf("%q is not one of: %s", name, strings.Join(items, ", ")))
		}
	}

	list, err := reorder.NewList(items...)
	if err != nil {
		return errors.New(errors.CodeCLIArgs).Wrap(err)
	}
	state := reorder.NewState[string](list)
	state.DragStart(drag)
	state.DragEnter(over)

	out := cmd.OutOrStdout()
	if preview {
		for _, item := range items {
			class := reorder.Classify[string](item, state).ClassName()
			if class == "" {
				class = "-"
			}
			fmt.Fprintf(out, "%s\t%s\n", item, class)
		}
	}

	if err := state.Drop(); err != nil {
		return errors.New(errors.CodeCLIUnknownItem).Wrap(err)
	}

	if asJSON {
		enc := json.NewEncoder(out)
		return enc.Encode(list.Items())
	}
	fmt.Fprintln(out, strings.Join(list.Items(), " "))
	return nil
}
