package suite

import (
	"bytes"
	"fmt"
	"io"
	"text/template"

	"github.com/Masterminds/sprig/v3"

	"fillbench/internal/runner"
)

// Report は順位付けされた計測結果
type Report struct {
	Config  Config
	Results []runner.Result // 実行順
	Ranking []runner.Result // 平均時間の昇順
}

// NewReport は結果を順位付けしてReportを作成する
func NewReport(cfg Config, results []runner.Result) *Report {
	return &Report{
		Config:  cfg,
		Results: results,
		Ranking: Rank(results),
	}
}

// Winner は平均時間が最小の結果を返す
func (r *Report) Winner() runner.Result {
	if len(r.Ranking) == 0 {
		return runner.Result{}
	}
	return r.Ranking[0]
}

const reportTemplate = `{{ repeat 60 "=" }}
RANKING ({{ .Config.ArraySize }} elements, {{ .Config.NumTests }} trials, {{ .Config.NumThreads }} workers, mode={{ .Config.WorkerMode }})
{{ repeat 60 "-" }}
{{- range $i, $r := .Ranking }}
  {{ add1 $i }}. {{ $r.Name | printf "%-28s" }} {{ $r.AverageTime | printf "%.3f" }}s
{{- end }}
{{ repeat 60 "=" }}
Winner: {{ .Winner.Name }}
`

var reportTmpl = template.Must(template.New("report").Funcs(sprig.TxtFuncMap()).Parse(reportTemplate))

// Render はレポートを書き出す。最終行は "Winner: <name>"
func (r *Report) Render(w io.Writer) error {
	if len(r.Ranking) == 0 {
		return fmt.Errorf("no results to report")
	}
	var buf bytes.Buffer
	if err := reportTmpl.Execute(&buf, struct {
		Config  Config
		Ranking []runner.Result
		Winner  runner.Result
	}{r.Config, r.Ranking, r.Winner()}); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	_, err := w.Write(buf.Bytes())
	return err
}

// String はレポートを文字列で返す
func (r *Report) String() string {
	var buf bytes.Buffer
	if err := r.Render(&buf); err != nil {
		return err.Error()
	}
	return buf.String()
}
