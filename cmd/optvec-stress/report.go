package main

import (
	"fmt"
	"io"
	"runtime"
	"text/template"
	"time"

	gojson "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// Report is the outcome of one stress run, rendered by Generate.
type Report struct {
	// Configuration
	Duration time.Duration `json:"duration" yaml:"duration"`
	Seed     uint64        `json:"seed" yaml:"seed"`
	Prefill  int           `json:"prefill" yaml:"prefill"`
	Workload Workload      `json:"workload" yaml:"workload"`

	// Results
	Ops       OpCounts      `json:"ops" yaml:"ops"`
	TotalOps  int64         `json:"total_ops" yaml:"total_ops"`
	TotalTime time.Duration `json:"total_time" yaml:"total_time"`
	OpsPerSec float64       `json:"ops_per_sec" yaml:"ops_per_sec"`
	Verifies  int64         `json:"verifies" yaml:"verifies"`
	Final     Shape         `json:"final" yaml:"final"`
	Memory    Memory        `json:"memory" yaml:"memory"`

	MemStatsStart runtime.MemStats `json:"-" yaml:"-"`
	MemStatsEnd   runtime.MemStats `json:"-" yaml:"-"`
}

// OpCounts is the number of operations of each kind the run applied.
type OpCounts struct {
	Push   int64 `json:"push" yaml:"push"`
	Remove int64 `json:"remove" yaml:"remove"`
	Pop    int64 `json:"pop" yaml:"pop"`
	Set    int64 `json:"set" yaml:"set"`
}

// Shape is the size of the OptVec at the end of the run.
type Shape struct {
	Len     int `json:"len" yaml:"len"`
	RawLen  int `json:"raw_len" yaml:"raw_len"`
	FreeLen int `json:"free_len" yaml:"free_len"`
	Cap     int `json:"cap" yaml:"cap"`
}

// Memory summarizes runtime.MemStats deltas across the run.
type Memory struct {
	HeapAllocDelta  int64  `json:"heap_alloc_delta" yaml:"heap_alloc_delta"`
	TotalAllocDelta int64  `json:"total_alloc_delta" yaml:"total_alloc_delta"`
	NumGC           uint32 `json:"num_gc" yaml:"num_gc"`
}

// Finalize fills the derived fields from the runner's counters.
func (r *Report) Finalize(rn *runner) {
	r.Ops = OpCounts{
		Push:   rn.ops[opPush],
		Remove: rn.ops[opRemove],
		Pop:    rn.ops[opPop],
		Set:    rn.ops[opSet],
	}
	r.TotalOps = r.Ops.Push + r.Ops.Remove + r.Ops.Pop + r.Ops.Set
	if r.TotalTime > 0 {
		r.OpsPerSec = float64(r.TotalOps) / r.TotalTime.Seconds()
	}
	r.Verifies = rn.verifies
	r.Final = Shape{
		Len:     rn.vec.Len(),
		RawLen:  rn.vec.RawLen(),
		FreeLen: rn.vec.FreeLen(),
		Cap:     rn.vec.Cap(),
	}
	r.Memory = Memory{
		HeapAllocDelta:  int64(r.MemStatsEnd.HeapAlloc) - int64(r.MemStatsStart.HeapAlloc),
		TotalAllocDelta: int64(r.MemStatsEnd.TotalAlloc) - int64(r.MemStatsStart.TotalAlloc),
		NumGC:           r.MemStatsEnd.NumGC - r.MemStatsStart.NumGC,
	}
}

// Generate writes the report as "text" (the default), "json" or "yaml".
func (r *Report) Generate(w io.Writer, format string) error {
	switch format {
	case "text", "":
		return r.generateText(w)
	case "json":
		enc := gojson.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(r)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(r); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown report format %q", format)
	}
}

func (r *Report) generateText(w io.Writer) error {
	const reportTemplate = `
# OptVec Stress Test Report

## Test Configuration
- **Run Duration:** {{.Duration}}
- **Seed:** {{.Seed}}
- **Prefilled Slots:** {{.Prefill}}
- **Weights:** push={{.Workload.Push}} remove={{.Workload.Remove}} pop={{.Workload.Pop}} set={{.Workload.Set}}
- **Verify Every:** {{.Workload.VerifyEvery}} ops

## Performance Results
- **Total Ops:** {{.TotalOps}} (push {{.Ops.Push}}, remove {{.Ops.Remove}}, pop {{.Ops.Pop}}, set {{.Ops.Set}})
- **Total Test Time:** {{.TotalTime}}
- **Throughput:** {{printf "%.0f" .OpsPerSec}} ops/s
- **Full Verifications:** {{.Verifies}}

## Final Shape
- Len: {{.Final.Len}}  RawLen: {{.Final.RawLen}}  Free: {{.Final.FreeLen}}  Cap: {{.Final.Cap}}
- Fragmentation: {{frag .Final}}

## Memory Usage (Raw Bytes)
- Heap Alloc delta:  {{.Memory.HeapAllocDelta}} ({{mb .Memory.HeapAllocDelta}} MiB)
- Total Alloc delta: {{.Memory.TotalAllocDelta}} ({{mb .Memory.TotalAllocDelta}} MiB)
- Num GC:            {{.Memory.NumGC}}
`

	fm := template.FuncMap{
		"mb": func(v int64) string {
			return fmt.Sprintf("%.2f", float64(v)/1024/1024)
		},
		"frag": func(s Shape) string {
			if s.RawLen == 0 {
				return "n/a"
			}
			return fmt.Sprintf("%.1f%%", 100*float64(s.FreeLen)/float64(s.RawLen))
		},
	}

	tmpl, err := template.New("report").Funcs(fm).Parse(reportTemplate)
	if err != nil {
		return err
	}

	return tmpl.Execute(w, r)
}
