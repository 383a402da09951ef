package handlers

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/hawwa-platform/ledgercore/internal/core/domain"
	"github.com/hawwa-platform/ledgercore/internal/dto"
)

// utf8BOM prefixes exports so spreadsheet tools pick up the encoding.
const utf8BOM = "\xEF\xBB\xBF"

const csvBufferSize = 32 * 1024

type csvStreamer struct {
	buf *bufio.Writer
	csv *csv.Writer
}

func newCSVStreamer(w io.Writer) *csvStreamer {
	buf := bufio.NewWriterSize(w, csvBufferSize)
	writer := csv.NewWriter(buf)
	writer.UseCRLF = true
	return &csvStreamer{buf: buf, csv: writer}
}

// writeComment emits a raw metadata line above the tabular section.
func (s *csvStreamer) writeComment(line string) error {
	if !strings.HasSuffix(line, "\r\n") {
		line = strings.TrimSuffix(line, "\n")
		line += "\r\n"
	}
	_, err := s.buf.WriteString(line)
	return err
}

func (s *csvStreamer) writeRow(row []string) error {
	return s.csv.Write(row)
}

func (s *csvStreamer) Close() error {
	s.csv.Flush()
	if err := s.csv.Error(); err != nil {
		return err
	}
	return s.buf.Flush()
}

// writeTrialBalanceCSV streams the report with a metadata header followed by
// the column rows.
func writeTrialBalanceCSV(w io.Writer, report *domain.TrialBalanceReport, params dto.TrialBalanceParams, baseCurrency string) error {
	if _, err := io.WriteString(w, utf8BOM); err != nil {
		return err
	}

	streamer := newCSVStreamer(w)
	if err := streamer.writeComment("# Report: Trial Balance"); err != nil {
		return err
	}
	if err := streamer.writeComment(fmt.Sprintf("# Generated At: %s", time.Now().UTC().Format(time.RFC3339))); err != nil {
		return err
	}
	filter := "none"
	if params.AccountType != nil {
		filter = fmt.Sprintf("account_type=%s", *params.AccountType)
	}
	if err := streamer.writeComment(fmt.Sprintf("# Filters: %s", filter)); err != nil {
		return err
	}
	if err := streamer.writeComment(fmt.Sprintf("# Sort: %s", params.SortBy)); err != nil {
		return err
	}
	if err := streamer.writeComment(fmt.Sprintf("# Base Currency: %s", baseCurrency)); err != nil {
		return err
	}

	if err := streamer.writeRow([]string{"account_code", "account_name", "account_type", "balance_in_base_currency", "balance_raw"}); err != nil {
		return err
	}
	for _, row := range report.Rows {
		// Journal amounts are recorded in the base currency, so both
		// balance columns carry the same figure.
		if err := streamer.writeRow([]string{
			row.AccountCode,
			row.AccountName,
			string(row.AccountType),
			row.Balance.String(),
			row.Balance.String(),
		}); err != nil {
			return err
		}
	}
	if err := streamer.writeRow([]string{"TOTAL", "", "", report.Total.String(), ""}); err != nil {
		return err
	}
	return streamer.Close()
}
