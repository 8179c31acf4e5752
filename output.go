package inch

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/kshedden/gonpy"
)

type nopCloser struct {
	io.Writer
}

func (nopCloser) Close() error { return nil }

// openOutput returns stdout if fnm is "-", otherwise a newly created
// (truncated) file.
func openOutput(fnm string, stdout io.Writer) (io.WriteCloser, error) {
	if fnm == "-" {
		return nopCloser{stdout}, nil
	}
	return os.OpenFile(fnm, os.O_CREATE|os.O_TRUNC|os.O_WRONLY, 0666)
}

// writeTo opens fnm (or stdout), runs write with a buffered writer,
// then flushes and closes.
func writeTo(fnm string, stdout io.Writer, write func(io.Writer) error) error {
	output, err := openOutput(fnm, stdout)
	if err != nil {
		return err
	}
	defer output.Close()
	bufw := bufio.NewWriter(output)
	err = write(bufw)
	if err != nil {
		return err
	}
	err = bufw.Flush()
	if err != nil {
		return err
	}
	return output.Close()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// writeMatrixText writes m as an aligned table with a header line of
// column labels.
func writeMatrixText(w io.Writer, m *LabeledMatrix) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	fmt.Fprintf(tw, "\t%s\n", strings.Join(m.cols, "\t"))
	rows, cols := m.Dims()
	cells := make([]string, cols)
	for i := 0; i < rows; i++ {
		for j := range cells {
			cells[j] = formatFloat(m.At(i, j))
		}
		fmt.Fprintf(tw, "%s\t%s\n", m.rows[i], strings.Join(cells, "\t"))
	}
	return tw.Flush()
}

// writeMatrixNumpy writes the values of m as a 2-D float64 .npy
// array. Labels are not included.
func writeMatrixNumpy(w io.Writer, m *LabeledMatrix) error {
	npw, err := gonpy.NewWriter(nopCloser{w})
	if err != nil {
		return fmt.Errorf("gonpy.NewWriter: %w", err)
	}
	rows, cols := m.Dims()
	npw.Shape = []int{rows, cols}
	err = npw.WriteFloat64(m.Float64s())
	if err != nil {
		return fmt.Errorf("WriteFloat64: %w", err)
	}
	return nil
}

// checkLabelsFile rejects a -labels destination that would land in
// the same stream as the .npy data.
func checkLabelsFile(fnm string) error {
	if fnm == "-" {
		return errors.New("-labels must be a file, not stdout")
	}
	return nil
}

func writeLabels(fnm string, stdout io.Writer, labels []string) error {
	return writeTo(fnm, stdout, func(w io.Writer) error {
		for _, label := range labels {
			_, err := fmt.Fprintln(w, label)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

func writeAssignment(w io.Writer, a Assignment) error {
	tw := tabwriter.NewWriter(w, 0, 8, 1, ' ', 0)
	for _, m := range a {
		fmt.Fprintf(tw, "%s\t%s\n", m.Descendent, m.Founder)
	}
	return tw.Flush()
}

// writePCAText writes the variances, rounded to 4 decimal places, on
// the first line, followed by the weights table.
func writePCAText(w io.Writer, res *PCAResult) error {
	vars := make([]string, len(res.Variances))
	for i, v := range res.Variances {
		vars[i] = formatFloat(math.Round(v*1e4) / 1e4)
	}
	_, err := fmt.Fprintln(w, strings.Join(vars, " "))
	if err != nil {
		return err
	}
	return writeMatrixText(w, res.Weights)
}

type outputFormat string

const (
	formatText  outputFormat = "text"
	formatNumpy outputFormat = "npy"
)

func parseOutputFormat(s string) (outputFormat, error) {
	switch outputFormat(s) {
	case formatText, formatNumpy:
		return outputFormat(s), nil
	}
	return "", fmt.Errorf("invalid output format %q (choices: text, npy)", s)
}
