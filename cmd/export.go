package cmd

import (
	"github.com/kyubxy/simai-analyzer/log"
	"github.com/kyubxy/simai-analyzer/midi"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(exportCmd)
}

var exportCmd = &cobra.Command{
	Use:   "export <file> <difficulty> <out.mid>",
	Short: "Exports a chart as midi",
	Long:  `Writes the notes of one difficulty as a standard midi file.`,
	Args:  cobra.ExactArgs(3),
	Run: func(cmd *cobra.Command, args []string) {
		if err := export(args[0], args[1], args[2]); err != nil {
			panic(err)
		}
	},
}

// export writes one difficulty to out and reads it back to make sure the
// file is a valid smf.
func export(path, difficulty, out string) error {
	res, err := deserializeFile(path)
	if err != nil {
		return err
	}
	level, ok := res.Chart.Levels[difficulty]
	if !ok {
		return errors.Errorf("%v has no %v chart", path, difficulty)
	}
	if err := midi.WriteFile(level.Chart, out); err != nil {
		return err
	}
	written, err := midi.ReadMidiFile(out)
	if err != nil {
		return errors.Wrapf(err, "%v does not read back", out)
	}
	log.FS.Info("Wrote", "file", out, "tracks", len(written.Tracks))
	return nil
}
