package main

import (
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/pg-sharding/stmtrouter/pkg/conn"
	"github.com/pg-sharding/stmtrouter/router/statistics"
	"golang.org/x/exp/maps"
)

// parseParam turns a command line value into a statement parameter:
// integers and floats keep their numeric type, NULL is nil.
func parseParam(v string) any {
	if strings.EqualFold(v, "null") {
		return nil
	}
	if i, err := strconv.ParseInt(v, 10, 64); err == nil {
		return i
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return f
	}
	return v
}

func parseParams(vals []string) []any {
	res := make([]any, 0, len(vals))
	for _, v := range vals {
		res = append(res, parseParam(v))
	}
	return res
}

func parseSet(set string) []any {
	if strings.TrimSpace(set) == "" {
		return nil
	}
	parts := strings.Split(set, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}
	return parseParams(parts)
}

func printRows(out io.Writer, rows conn.Rows) error {
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(cols, "\t"))

	n := 0
	vals := make([]any, len(cols))
	ptrs := make([]any, len(cols))
	for i := range vals {
		ptrs[i] = &vals[i]
	}
	for rows.Next() {
		if err := rows.Scan(ptrs...); err != nil {
			return err
		}
		cells := make([]string, len(vals))
		for i, v := range vals {
			cells[i] = formatValue(v)
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
		n++
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return err
	}
	_, err = fmt.Fprintf(out, "(%d rows)\n", n)
	return err
}

func formatValue(v any) string {
	switch v := v.(type) {
	case nil:
		return "NULL"
	case []byte:
		return string(v)
	default:
		return fmt.Sprint(v)
	}
}

func printCounts(out io.Writer, counts []int64) error {
	for i, c := range counts {
		if _, err := fmt.Fprintf(out, "entry %d: UPDATE %d\n", i, c); err != nil {
			return err
		}
	}
	return nil
}

func printErrorCounts(out io.Writer, counts map[string]uint64) {
	types := maps.Keys(counts)
	sort.Strings(types)
	for _, typ := range types {
		fmt.Fprintf(out, "shard errors %s: %d\n", typ, counts[typ])
	}
}

func printStatistics(out io.Writer, stats *statistics.Statistics) error {
	shards := stats.Shards()
	if len(shards) == 0 {
		return nil
	}
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	header := []string{"shard", "calls"}
	for _, q := range stats.Quantiles() {
		header = append(header, fmt.Sprintf("p%g ms", q*100))
	}
	fmt.Fprintln(w, strings.Join(header, "\t"))
	for _, sh := range shards {
		row := []string{sh, strconv.FormatUint(stats.Count(sh), 10)}
		for _, q := range stats.Quantiles() {
			row = append(row, strconv.FormatFloat(stats.Quantile(sh, q), 'f', 3, 64))
		}
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}
	return w.Flush()
}
