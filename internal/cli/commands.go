package cli

import (
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Makepad-fr/cart/internal/cart"
	"github.com/Makepad-fr/cart/internal/tui"
)

type appFunc func() *app

// -------------- argument helpers ----------------

func exactArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) != n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func minArgs(n int, usage string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < n {
			return usagef("usage: %s", usage)
		}
		return nil
	}
}

func parseInt(what, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, usagef("%s: not a number: %s", what, s)
	}
	return n, nil
}

// -------------- subcommands ----------------

// Each one-shot command hydrates the store without drawing, applies one
// operation and prints the resulting list once.

func (a *app) oneShot(op func(s *cart.Store)) {
	s := a.newStore(nil)
	op(s)
	a.printer().Render(s.Items())
}

func newListCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "ls",
		Aliases: []string{"list"},
		Short:   "List items",
		Args:    exactArgs(0, "cart ls"),
		RunE: func(cmd *cobra.Command, args []string) error {
			get().oneShot(func(*cart.Store) {})
			return nil
		},
	}
}

func newAddCmd(get appFunc) *cobra.Command {
	var qty int
	c := &cobra.Command{
		Use:   "add <name...>",
		Short: "Add a new item (name can be multiple words)",
		Args:  minArgs(1, "cart add <name...> [-q N]"),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := strings.TrimSpace(strings.Join(args, " "))
			if name == "" {
				return usagef("add: empty name")
			}
			if qty < 1 {
				return usagef("add: quantity must be at least 1")
			}
			get().oneShot(func(s *cart.Store) { s.AddItem(name, qty) })
			return nil
		},
	}
	c.Flags().IntVarP(&qty, "quantity", "q", 1, "quantity")
	return c
}

func newRemoveCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Remove the item with id",
		Args:    exactArgs(1, "cart rm <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("rm", args[0])
			if err != nil {
				return err
			}
			get().oneShot(func(s *cart.Store) { s.DeleteItem(id) })
			return nil
		},
	}
}

func newToggleCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:     "toggle <id>",
		Aliases: []string{"done"},
		Short:   "Toggle purchased for the item with id",
		Args:    exactArgs(1, "cart toggle <id>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("toggle", args[0])
			if err != nil {
				return err
			}
			get().oneShot(func(s *cart.Store) { s.TogglePurchased(id) })
			return nil
		},
	}
}

func newQtyCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "qty <id> <delta>",
		Short: "Change the quantity by delta (never below 1)",
		Args:  exactArgs(2, "cart qty <id> <delta>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("qty", args[0])
			if err != nil {
				return err
			}
			delta, err := parseInt("qty", args[1])
			if err != nil {
				return err
			}
			get().oneShot(func(s *cart.Store) { s.UpdateQuantity(id, delta) })
			return nil
		},
	}
}

func newRenameCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <name...>",
		Short: "Rename the item with id; blank names are ignored",
		Args:  minArgs(2, "cart rename <id> <name...>"),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseInt("rename", args[0])
			if err != nil {
				return err
			}
			name := strings.Join(args[1:], " ")
			get().oneShot(func(s *cart.Store) { s.UpdateName(id, name) })
			return nil
		},
	}
}

func newResetCmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "reset",
		Short: "Forget the stored list; the next run starts from the defaults",
		Args:  exactArgs(0, "cart reset"),
		RunE: func(cmd *cobra.Command, args []string) error {
			a := get()
			if err := a.slot.Clear(); err != nil {
				return err
			}
			a.theme.OK(a.out, "cleared "+a.slot.Key())
			return nil
		},
	}
}

func newTUICmd(get appFunc) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Interactive list",
		Args:  exactArgs(0, "cart tui"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(get())
		},
	}
}

func runTUI(a *app) error {
	frame := &tui.Frame{}
	s := a.newStore(frame)
	return tui.Run(s, frame, a.theme)
}
