package main

import (
	"encoding/hex"
	"runtime"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/born-ml/idx/matrix"
)

func newInfoCmd() *cobra.Command {
	infoCmd := &cobra.Command{
		Use:   "info FILE...",
		Short: "Show the type and extents of matrix files",
		Args:  cobra.MinimumNArgs(1),
		RunE:  InfoHandler,
	}
	infoCmd.Flags().Bool("checksum", false, "Also show the SHA-256 of each file")
	return infoCmd
}

// InfoHandler reads the header of every file concurrently and prints one table row per file.
func InfoHandler(cmd *cobra.Command, args []string) error {
	withSum, err := cmd.Flags().GetBool("checksum")
	if err != nil {
		return err
	}
	headers := make([]*matrix.Header, len(args))
	sums := make([]string, len(args))

	var g errgroup.Group
	g.SetLimit(max(runtime.GOMAXPROCS(0)-1, 1))
	for i, path := range args {
		g.Go(func() error {
			h, err := matrix.LoadHeader(path)
			if err != nil {
				return err
			}
			headers[i] = h
			if withSum {
				sum, err := matrix.ChecksumFile(path)
				if err != nil {
					return err
				}
				sums[i] = hex.EncodeToString(sum[:])[:12]
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	data := make([][]string, 0, len(args))
	for i, h := range headers {
		row := []string{
			args[i],
			typeLabel(h),
			strconv.Itoa(h.Order()),
			dimsLabel(h.Dims),
			strconv.Itoa(h.NumElements()),
			strconv.FormatInt(h.Size()+h.PayloadSize(), 10),
		}
		if withSum {
			row = append(row, sums[i])
		}
		data = append(data, row)
	}

	header := []string{"FILE", "TYPE", "ORDER", "DIMS", "ELEMENTS", "BYTES"}
	if withSum {
		header = append(header, "SHA256")
	}
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetHeader(header)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	table.SetHeaderLine(false)
	table.SetBorder(false)
	table.SetNoWhiteSpace(true)
	table.SetTablePadding("    ")
	table.AppendBulk(data)
	table.Render()

	return nil
}

func typeLabel(h *matrix.Header) string {
	if h.IDX {
		return matrix.TypeName(h.Type) + " (idx)"
	}
	return matrix.TypeName(h.Type)
}

func dimsLabel(dims []int) string {
	if len(dims) == 0 {
		return "-"
	}
	s := strconv.Itoa(dims[0])
	for _, d := range dims[1:] {
		s += "x" + strconv.Itoa(d)
	}
	return s
}
