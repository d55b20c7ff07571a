package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"os/exec"
	"runtime"
	"runtime/metrics"
	"strings"
	"time"

	"github.com/vango-dev/draglist/pkg/protocol"
)

type runtimeMetricsSnapshot struct {
	cpuTotalSeconds   float64
	cpuGCSeconds      float64
	heapAllocsObjects uint64
}

func readRuntimeMetrics() runtimeMetricsSnapshot {
	samples := []metrics.Sample{
		{Name: "/cpu/classes/total:cpu-seconds"},
		{Name: "/cpu/classes/gc/total:cpu-seconds"},
		{Name: "/gc/heap/allocs:objects"},
	}
	metrics.Read(samples)

	var out runtimeMetricsSnapshot
	for _, s := range samples {
		switch s.Name {
		case "/cpu/classes/total:cpu-seconds":
			out.cpuTotalSeconds = s.Value.Float64()
		case "/cpu/classes/gc/total:cpu-seconds":
			out.cpuGCSeconds = s.Value.Float64()
		case "/gc/heap/allocs:objects":
			out.heapAllocsObjects = s.Value.Uint64()
		}
	}
	return out
}

func cpuFraction(after, before runtimeMetricsSnapshot) float64 {
	total := after.cpuTotalSeconds - before.cpuTotalSeconds
	if total <= 0 {
		return 0
	}
	gc := after.cpuGCSeconds - before.cpuGCSeconds
	if gc < 0 {
		return 0
	}
	return gc / total
}

func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	if p <= 0 {
		return sorted[0]
	}
	if p >= 1 {
		return sorted[len(sorted)-1]
	}
	idx := int(math.Ceil(float64(len(sorted))*p)) - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

func avgPause(after, before runtime.MemStats) time.Duration {
	gcCount := after.NumGC - before.NumGC
	if gcCount == 0 {
		return 0
	}
	return time.Duration((after.PauseTotalNs - before.PauseTotalNs) / uint64(gcCount))
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

type benchReport struct {
	Version    string                 `json:"version"`
	Run        runInfo                `json:"run"`
	Workload   workloadInfo           `json:"workload"`
	LatencyMS  latencyInfo            `json:"latency_ms"`
	ByEvent    map[string]latencyInfo `json:"latency_ms_by_event"`
	Throughput throughputInfo         `json:"throughput"`
	GC         gcInfo                 `json:"gc"`
	Protocol   protocolInfo           `json:"protocol"`
	Errors     errorInfo              `json:"errors"`
}

type runInfo struct {
	Timestamp string `json:"timestamp"`
	Go        string `json:"go"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	CPUCount  int    `json:"cpu_count"`
	GitCommit string `json:"git_commit,omitempty"`
}

type workloadInfo struct {
	Profile        string  `json:"profile"`
	Target         string  `json:"target"`
	Clients        int     `json:"clients"`
	DurationMS     int64   `json:"duration_ms"`
	RPSPerClient   float64 `json:"gestures_per_sec_per_client"`
	ListSize       int     `json:"list_size"`
	MaxProcs       int     `json:"max_procs"`
	MemLimitBytes  int64   `json:"mem_limit_bytes"`
	EventTimeoutMS int64   `json:"event_timeout_ms"`
}

type latencyInfo struct {
	Count int     `json:"count"`
	Min   float64 `json:"min"`
	P50   float64 `json:"p50"`
	P95   float64 `json:"p95"`
	P99   float64 `json:"p99"`
	Max   float64 `json:"max"`
}

type throughputInfo struct {
	Gestures           uint64  `json:"gestures_total"`
	EventsTotal        uint64  `json:"events_total"`
	EventsPerSec       float64 `json:"events_per_sec"`
	EventsPerSecClient float64 `json:"events_per_sec_per_client"`
}

type gcInfo struct {
	AllocMB       float64 `json:"alloc_mb"`
	HeapLiveMB    float64 `json:"heap_live_mb"`
	NumGC         uint32  `json:"num_gc"`
	PauseTotalMS  float64 `json:"pause_total_ms"`
	PauseAvgMS    float64 `json:"pause_avg_ms"`
	GCCPUFraction float64 `json:"gc_cpu_fraction"`
	AllocsObjects uint64  `json:"allocs_objects"`
}

type protocolInfo struct {
	EventBytesTotal   uint64  `json:"event_bytes_total"`
	PatchFrames       uint64  `json:"patch_frames_total"`
	PatchesTotal      uint64  `json:"patches_total"`
	PatchBytesTotal   uint64  `json:"patch_bytes_total"`
	ReplaceFrames     uint64  `json:"replace_frames_total"`
	ReplaceBytesTotal uint64  `json:"replace_bytes_total"`
	AvgEventBytes     float64 `json:"avg_event_bytes"`
	AvgReplaceBytes   float64 `json:"avg_replace_bytes"`
	PatchesPerEvent   float64 `json:"patches_per_event"`
}

type errorInfo struct {
	TotalErrors         uint64 `json:"total_errors"`
	DialFailures        uint64 `json:"dial_failures"`
	MountFailures       uint64 `json:"mount_failures"`
	EventWriteFailures  uint64 `json:"event_write_failures"`
	FrameDecodeFailures uint64 `json:"frame_decode_failures"`
	ServerErrorFrames   uint64 `json:"server_error_frames"`
	UnexpectedFrames    uint64 `json:"unexpected_frames"`
	Timeouts            uint64 `json:"timeouts"`
}

// summarize computes latency statistics over samples sorted by rtt.
func summarize(sorted []time.Duration) latencyInfo {
	if len(sorted) == 0 {
		return latencyInfo{}
	}
	return latencyInfo{
		Count: len(sorted),
		Min:   ms(sorted[0]),
		P50:   ms(percentile(sorted, 0.50)),
		P95:   ms(percentile(sorted, 0.95)),
		P99:   ms(percentile(sorted, 0.99)),
		Max:   ms(sorted[len(sorted)-1]),
	}
}

func buildReport(
	cfg benchConfig,
	elapsed time.Duration,
	samples []sample,
	counters *benchCounters,
	errs *benchErrors,
	before runtime.MemStats,
	after runtime.MemStats,
	beforeMetrics runtimeMetricsSnapshot,
	afterMetrics runtimeMetricsSnapshot,
) benchReport {
	all := make([]time.Duration, len(samples))
	perEvent := make(map[protocol.EventType][]time.Duration)
	for i, s := range samples {
		all[i] = s.rtt
		perEvent[s.event] = append(perEvent[s.event], s.rtt)
	}
	byEvent := make(map[string]latencyInfo, len(perEvent))
	for et, rtts := range perEvent {
		byEvent[et.DOMName()] = summarize(rtts)
	}

	eventsTotal := counters.eventsComplete.Load()
	eventsSent := counters.eventsSent.Load()
	patchesTotal := counters.patchesTotal.Load()
	replaceFrames := counters.replaceFrames.Load()
	eventBytes := counters.eventBytes.Load()
	replaceBytes := counters.replaceBytes.Load()

	elapsedSeconds := math.Max(0.001, elapsed.Seconds())
	eventsPerSec := float64(eventsTotal) / elapsedSeconds

	target := cfg.URL
	if target == "" {
		target = "in-process"
	}

	return benchReport{
		Version: "1",
		Run: runInfo{
			Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
			Go:        runtime.Version(),
			OS:        runtime.GOOS,
			Arch:      runtime.GOARCH,
			CPUCount:  runtime.NumCPU(),
			GitCommit: gitCommit(),
		},
		Workload: workloadInfo{
			Profile:        cfg.Profile,
			Target:         target,
			Clients:        cfg.Clients,
			DurationMS:     cfg.Duration.Milliseconds(),
			RPSPerClient:   cfg.RPS,
			ListSize:       cfg.ListSize,
			MaxProcs:       cfg.MaxProcs,
			MemLimitBytes:  cfg.MemLimitBytes,
			EventTimeoutMS: cfg.EventTimeout.Milliseconds(),
		},
		LatencyMS: summarize(all),
		ByEvent:   byEvent,
		Throughput: throughputInfo{
			Gestures:           counters.gestures.Load(),
			EventsTotal:        eventsTotal,
			EventsPerSec:       eventsPerSec,
			EventsPerSecClient: eventsPerSec / float64(cfg.Clients),
		},
		GC: gcInfo{
			AllocMB:       float64(after.TotalAlloc-before.TotalAlloc) / (1024 * 1024),
			HeapLiveMB:    float64(after.HeapAlloc) / (1024 * 1024),
			NumGC:         after.NumGC - before.NumGC,
			PauseTotalMS:  ms(time.Duration(after.PauseTotalNs - before.PauseTotalNs)),
			PauseAvgMS:    ms(avgPause(after, before)),
			GCCPUFraction: cpuFraction(afterMetrics, beforeMetrics),
			AllocsObjects: afterMetrics.heapAllocsObjects - beforeMetrics.heapAllocsObjects,
		},
		Protocol: protocolInfo{
			EventBytesTotal:   eventBytes,
			PatchFrames:       counters.patchFrames.Load(),
			PatchesTotal:      patchesTotal,
			PatchBytesTotal:   counters.patchBytes.Load(),
			ReplaceFrames:     replaceFrames,
			ReplaceBytesTotal: replaceBytes,
			AvgEventBytes:     ratio(eventBytes, eventsSent),
			AvgReplaceBytes:   ratio(replaceBytes, replaceFrames),
			PatchesPerEvent:   ratio(patchesTotal, eventsTotal),
		},
		Errors: errorInfo{
			TotalErrors:         errs.totalErrors.Load(),
			DialFailures:        errs.dialFailures.Load(),
			MountFailures:       errs.mountFailures.Load(),
			EventWriteFailures:  errs.eventWriteFailures.Load(),
			FrameDecodeFailures: errs.frameDecodeFailures.Load(),
			ServerErrorFrames:   errs.serverErrorFrames.Load(),
			UnexpectedFrames:    errs.unexpectedFrames.Load(),
			Timeouts:            errs.timeouts.Load(),
		},
	}
}

func ratio(n, d uint64) float64 {
	if d == 0 {
		return 0
	}
	return float64(n) / float64(d)
}

func writeSummary(w io.Writer, report benchReport) {
	fmt.Fprintln(w, "=== draglist gesture benchmark ===")
	fmt.Fprintf(w, "Profile: %s (%s)\n", report.Workload.Profile, report.Workload.Target)
	fmt.Fprintf(w, "Clients: %d\n", report.Workload.Clients)
	fmt.Fprintf(w, "Duration: %s\n", time.Duration(report.Workload.DurationMS)*time.Millisecond)
	fmt.Fprintf(w, "Target per-client rate: %.2f gestures/s\n", report.Workload.RPSPerClient)
	fmt.Fprintf(w, "List size: %d\n", report.Workload.ListSize)
	if report.Workload.MaxProcs > 0 {
		fmt.Fprintf(w, "GOMAXPROCS cap: %d\n", report.Workload.MaxProcs)
	}
	if report.Workload.MemLimitBytes > 0 {
		fmt.Fprintf(w, "GOMEMLIMIT cap: %.2f GiB\n", float64(report.Workload.MemLimitBytes)/float64(gib))
	}
	fmt.Fprintln(w)

	fmt.Fprintf(w, "Gestures: %d\n", report.Throughput.Gestures)
	fmt.Fprintf(w, "Total events: %d\n", report.Throughput.EventsTotal)
	fmt.Fprintf(w, "Throughput: %.1f events/s (%.2f per client)\n", report.Throughput.EventsPerSec, report.Throughput.EventsPerSecClient)
	fmt.Fprintf(w, "Errors: %d\n", report.Errors.TotalErrors)
	fmt.Fprintln(w)

	if report.LatencyMS.Count == 0 {
		fmt.Fprintln(w, "No latency samples recorded.")
	} else {
		fmt.Fprintln(w, "RTT (event sent -> reply frame decoded):")
		writeLatency(w, "all", report.LatencyMS)
		for _, et := range gestureEvents {
			if l, ok := report.ByEvent[et.DOMName()]; ok {
				writeLatency(w, et.DOMName(), l)
			}
		}
	}
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Protocol:")
	fmt.Fprintf(w, "  event bytes (avg):   %.1f\n", report.Protocol.AvgEventBytes)
	fmt.Fprintf(w, "  patches/event:       %.2f\n", report.Protocol.PatchesPerEvent)
	fmt.Fprintf(w, "  replace bytes (avg): %.1f\n", report.Protocol.AvgReplaceBytes)
	fmt.Fprintln(w)

	fmt.Fprintln(w, "Go runtime / GC (process-wide):")
	fmt.Fprintf(w, "  alloc:     %.2f MB\n", report.GC.AllocMB)
	fmt.Fprintf(w, "  heap_live: %.2f MB\n", report.GC.HeapLiveMB)
	fmt.Fprintf(w, "  num_gc:    %d\n", report.GC.NumGC)
	fmt.Fprintf(w, "  gc_pause:  %.2f ms (total)\n", report.GC.PauseTotalMS)
	fmt.Fprintf(w, "  gc_pause:  %.2f ms (avg)\n", report.GC.PauseAvgMS)
	fmt.Fprintf(w, "  gc_cpu:    %.2f%%\n", report.GC.GCCPUFraction*100)
}

func writeLatency(w io.Writer, name string, l latencyInfo) {
	fmt.Fprintf(w, "  %-10s n=%-7d min %.2f  p50 %.2f  p95 %.2f  p99 %.2f  max %.2f ms\n",
		name, l.Count, l.Min, l.P50, l.P95, l.P99, l.Max)
}

func writeJSON(path string, report benchReport) error {
	var out io.Writer
	if path == "-" {
		out = os.Stdout
	} else {
		file, err := os.Create(path)
		if err != nil {
			return err
		}
		defer file.Close()
		out = file
	}

	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}

func gitCommit() string {
	if val := strings.TrimSpace(os.Getenv("DRAGLIST_GIT_COMMIT")); val != "" {
		return val
	}
	if val := strings.TrimSpace(os.Getenv("GIT_COMMIT")); val != "" {
		return val
	}
	out, err := exec.Command("git", "rev-parse", "HEAD").Output()
	if err != nil {
		return ""
	}
	return strings.TrimSpace(string(out))
}
