// Package export writes trajectories in formats other tools can read.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/san-kum/phytosim/internal/dynamo"
)

var csvHeader = []string{"time", "biomass", "contaminant"}

// WriteCSV writes one row per sample with six decimal places.
func WriteCSV(w io.Writer, traj *dynamo.Trajectory) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}
	for i := 0; i < traj.Len(); i++ {
		t, x := traj.At(i)
		row := []string{
			strconv.FormatFloat(t, 'f', 6, 64),
			strconv.FormatFloat(x.A, 'f', 6, 64),
			strconv.FormatFloat(x.N, 'f', 6, 64),
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ToFile creates path and hands it to write. The file is removed again if
// write or close fails, so a failed export leaves nothing behind.
func ToFile(path string, write func(io.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(f); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}
	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}
