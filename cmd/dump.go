package cmd

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/beanboi7/chyp8/emu/cpu"
)

var dumpCmd = &cobra.Command{
	Use:   "dump `path/ROM`",
	Short: "disassemble a ROM",
	Args:  cobra.ExactArgs(1),
	RunE:  Dump,
}

func init() {
	rootCmd.AddCommand(dumpCmd)
}

// chyp8 dump 'path/to/ROM'
func Dump(cmd *cobra.Command, args []string) error {
	emu := cpu.NewEMU(nil, nil, nil)
	n, err := emu.LoadROM(args[0])
	if err != nil {
		return err
	}
	return dump(cmd.OutOrStdout(), emu.Memory(cpu.ProgramStart, n))
}

// dump writes one line per instruction word. Data mixed in with code is
// disassembled all the same; a trailing odd byte is shown on its own.
func dump(w io.Writer, image []byte) error {
	for i := 0; i < len(image); i += cpu.InstructionSize {
		addr := cpu.ProgramStart + i
		if i+1 >= len(image) {
			_, err := fmt.Fprintf(w, "%03X  %02X    db 0x%02X\n", addr, image[i], image[i])
			return err
		}
		word := uint16(image[i])<<8 | uint16(image[i+1])
		if _, err := fmt.Fprintf(w, "%03X  %04X  %s\n", addr, word, cpu.Decode(word)); err != nil {
			return err
		}
	}
	return nil
}
