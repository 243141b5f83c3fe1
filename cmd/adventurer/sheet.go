package main

import (
	"fmt"

	"github.com/plus3/adventurer/game"
	"github.com/plus3/adventurer/sprite"
	"github.com/spf13/cobra"
)

var sheetCmd = &cobra.Command{
	Use:   "sheet <path>",
	Short: "Describe a sprite-sheet file",
	Long: `Loads a sprite-sheet description, builds every clip and prints the
frames of each state. The sheet is checked against the character's
animation.`,
	Args: cobra.ExactArgs(1),
	RunE: runSheet,
}

func runSheet(cmd *cobra.Command, args []string) error {
	sheet, err := sprite.FromConfig(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "  %-5s  %-14s  %-6s  %s\n", "Key", "State", "Frames", "Size")
	fmt.Fprintf(out, "  %-5s  %-14s  %-6s  %s\n", "---", "-----", "------", "----")
	for _, state := range sheet.States() {
		first := sheet.Clip(state, 0)
		fmt.Fprintf(out, "  %-5d  %-14s  %-6d  %dx%d\n",
			state, game.StateName(state), sheet.Frames(state), first.Width(), first.Height())
	}
	fmt.Fprintln(out)

	if err := sheet.Validate(game.CharacterStates, game.CharacterFrames); err != nil {
		fmt.Fprintf(out, "Not usable for the character:\n%v\n", err)
		return nil
	}
	fmt.Fprintln(out, "Sheet covers every character state.")
	return nil
}
