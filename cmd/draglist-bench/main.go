// Command draglist-bench drives concurrent drag gestures over WebSocket and
// reports round-trip latency per event type.
//
// By default it starts an in-process server; -url targets a running one.
//
//	draglist-bench -profile fast
//	draglist-bench -url ws://localhost:8080/ws -clients 50 -duration 1m
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"log/slog"
	"math/rand/v2"
	"net"
	"net/http"
	"os"
	"runtime"
	"runtime/debug"
	"sort"
	"strconv"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/vango-dev/draglist/pkg/protocol"
	"github.com/vango-dev/draglist/pkg/server"
	"github.com/vango-dev/draglist/pkg/snapshot"
)

const gib = int64(1024 * 1024 * 1024)

type profile struct {
	Name     string
	Clients  int
	Duration time.Duration
	RPS      float64
	ListSize int
}

var profiles = map[string]profile{
	"fast": {
		Name:     "fast",
		Clients:  20,
		Duration: 5 * time.Second,
		RPS:      2,
		ListSize: 10,
	},
	"standard": {
		Name:     "standard",
		Clients:  200,
		Duration: 30 * time.Second,
		RPS:      2,
		ListSize: 20,
	},
	"stress": {
		Name:     "stress",
		Clients:  1000,
		Duration: 60 * time.Second,
		RPS:      5,
		ListSize: 50,
	},
}

type benchConfig struct {
	Profile       string
	URL           string
	Clients       int
	Duration      time.Duration
	RPS           float64 // gestures per second per client
	ListSize      int
	MaxProcs      int
	MemLimitBytes int64
	JSONOutput    string
	EventTimeout  time.Duration
}

// gestureEvents is the event sequence of one complete drag gesture.
var gestureEvents = []protocol.EventType{
	protocol.EventDragStart,
	protocol.EventDragEnter,
	protocol.EventDrop,
	protocol.EventDragEnd,
}

type benchCounters struct {
	gestures       atomic.Uint64
	eventsSent     atomic.Uint64
	eventsComplete atomic.Uint64
	eventBytes     atomic.Uint64
	patchFrames    atomic.Uint64
	patchesTotal   atomic.Uint64
	patchBytes     atomic.Uint64
	replaceFrames  atomic.Uint64
	replaceBytes   atomic.Uint64
}

type benchErrors struct {
	dialFailures        atomic.Uint64
	mountFailures       atomic.Uint64
	eventWriteFailures  atomic.Uint64
	frameDecodeFailures atomic.Uint64
	serverErrorFrames   atomic.Uint64
	unexpectedFrames    atomic.Uint64
	timeouts            atomic.Uint64
	totalErrors         atomic.Uint64
}

type sample struct {
	event protocol.EventType
	rtt   time.Duration
}

func main() {
	log.SetFlags(0)

	cfg, err := parseConfig(flag.CommandLine, os.Args[1:])
	if err != nil {
		log.Fatal(err)
	}

	if cfg.MaxProcs > 0 {
		runtime.GOMAXPROCS(cfg.MaxProcs)
	}
	if cfg.MemLimitBytes > 0 {
		debug.SetMemoryLimit(cfg.MemLimitBytes)
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn})))

	report, err := run(context.Background(), cfg)
	if err != nil {
		log.Fatal(err)
	}

	writeSummary(os.Stderr, report)
	if err := writeJSON(cfg.JSONOutput, report); err != nil {
		log.Fatalf("write json: %v", err)
	}
}

func parseConfig(fs *flag.FlagSet, args []string) (benchConfig, error) {
	profileFlag := fs.String("profile", "standard", "profile: fast|standard|stress")
	urlFlag := fs.String("url", "", "websocket URL of a running server (default: in-process server)")
	clientsFlag := fs.Int("clients", -1, "number of concurrent websocket clients")
	durationFlag := fs.String("duration", "", "benchmark duration, e.g. 30s")
	rpsFlag := fs.Float64("rps", -1, "target gestures/sec per client")
	listFlag := fs.Int("list", -1, "list size of the in-process server")
	maxProcsFlag := fs.Int("max-procs", -1, "GOMAXPROCS cap (0 to leave unchanged)")
	memLimitFlag := fs.String("mem-limit", "", "GOMEMLIMIT (e.g. 2GiB)")
	jsonFlag := fs.String("json", "-", "JSON output path ('-' for stdout)")
	if err := fs.Parse(args); err != nil {
		return benchConfig{}, err
	}

	name := strings.ToLower(strings.TrimSpace(*profileFlag))
	if name == "" {
		name = "standard"
	}
	base, ok := profiles[name]
	if !ok {
		return benchConfig{}, fmt.Errorf("unknown profile %q", name)
	}

	cfg := benchConfig{
		Profile:    base.Name,
		URL:        strings.TrimSpace(*urlFlag),
		Clients:    base.Clients,
		Duration:   base.Duration,
		RPS:        base.RPS,
		ListSize:   base.ListSize,
		JSONOutput: strings.TrimSpace(*jsonFlag),
	}

	if *clientsFlag != -1 {
		cfg.Clients = *clientsFlag
	}
	if *durationFlag != "" {
		d, err := time.ParseDuration(*durationFlag)
		if err != nil {
			return benchConfig{}, fmt.Errorf("invalid -duration: %w", err)
		}
		cfg.Duration = d
	}
	if *rpsFlag != -1 {
		cfg.RPS = *rpsFlag
	}
	if *listFlag != -1 {
		cfg.ListSize = *listFlag
	}
	if *maxProcsFlag != -1 {
		cfg.MaxProcs = *maxProcsFlag
	}
	if *memLimitFlag != "" {
		limit, err := parseBytes(*memLimitFlag)
		if err != nil {
			return benchConfig{}, fmt.Errorf("invalid -mem-limit: %w", err)
		}
		cfg.MemLimitBytes = limit
	}
	if cfg.JSONOutput == "" {
		cfg.JSONOutput = "-"
	}

	if cfg.Clients <= 0 {
		return benchConfig{}, errors.New("-clients must be > 0")
	}
	if cfg.Duration <= 0 {
		return benchConfig{}, errors.New("-duration must be > 0")
	}
	if cfg.RPS <= 0 {
		return benchConfig{}, errors.New("-rps must be > 0")
	}
	if cfg.ListSize < 2 {
		return benchConfig{}, errors.New("-list must be >= 2")
	}
	if cfg.MaxProcs < 0 {
		return benchConfig{}, errors.New("-max-procs must be >= 0")
	}

	cfg.EventTimeout = eventTimeout(cfg.RPS)
	return cfg, nil
}

// run executes the benchmark described by cfg and builds its report.
func run(ctx context.Context, cfg benchConfig) (benchReport, error) {
	wsURL := cfg.URL
	if wsURL == "" {
		addr, stop, err := startServer(cfg.ListSize)
		if err != nil {
			return benchReport{}, err
		}
		defer stop()
		wsURL = "ws://" + addr + "/ws"
	}

	ctx, cancel := context.WithTimeout(ctx, cfg.Duration)
	defer cancel()

	samplesCh := make(chan sample, sampleBuffer(cfg.Clients))
	var samples []sample
	collectorDone := make(chan struct{})
	go func() {
		defer close(collectorDone)
		for s := range samplesCh {
			samples = append(samples, s)
		}
	}()

	var counters benchCounters
	var errCounts benchErrors

	var before runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&before)
	beforeMetrics := readRuntimeMetrics()

	start := time.Now()
	var wg sync.WaitGroup
	wg.Add(cfg.Clients)
	for i := 0; i < cfg.Clients; i++ {
		clientID := i
		go func() {
			defer wg.Done()
			if err := runClient(ctx, wsURL, clientID, cfg, &counters, &errCounts, samplesCh); err != nil {
				errCounts.totalErrors.Add(1)
			}
		}()
	}

	wg.Wait()
	close(samplesCh)
	<-collectorDone
	elapsed := time.Since(start)

	var after runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&after)
	afterMetrics := readRuntimeMetrics()

	sort.Slice(samples, func(i, j int) bool { return samples[i].rtt < samples[j].rtt })
	return buildReport(cfg, elapsed, samples, &counters, &errCounts, before, after, beforeMetrics, afterMetrics), nil
}

// startServer serves a list of size items on a loopback port.
func startServer(size int) (string, func(), error) {
	items := make([]string, size)
	for i := range items {
		items[i] = "item-" + strconv.Itoa(i)
	}
	order := server.NewOrder("bench", items, snapshot.NewMemoryStore(), snapshot.BackendMemory, nil)
	srv := server.New(&server.Config{
		Address:     "127.0.0.1:0",
		CheckOrigin: server.AllowAllOrigins,
	}, order)

	ln, err := net.Listen("tcp4", "127.0.0.1:0")
	if err != nil {
		return "", nil, fmt.Errorf("listen: %w", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})
	go func() {
		defer close(done)
		if err := srv.Serve(ctx, ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Printf("server: %v", err)
		}
	}()
	return ln.Addr().String(), func() {
		cancel()
		<-done
	}, nil
}

func sampleBuffer(clients int) int {
	buf := clients * len(gestureEvents)
	if buf < 1024 {
		buf = 1024
	}
	return buf
}

func eventTimeout(rps float64) time.Duration {
	if rps <= 0 {
		return 0
	}
	period := time.Duration(float64(time.Second) / rps)
	timeout := period * 10
	if timeout < 2*time.Second {
		timeout = 2 * time.Second
	}
	return timeout
}

func parseBytes(input string) (int64, error) {
	s := strings.TrimSpace(input)
	if s == "" {
		return 0, errors.New("empty size")
	}

	var i int
	for i < len(s) {
		c := s[i]
		if (c >= '0' && c <= '9') || c == '.' {
			i++
			continue
		}
		break
	}
	if i == 0 {
		return 0, fmt.Errorf("invalid size %q", input)
	}

	value, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return 0, err
	}

	var multiplier float64
	switch strings.ToLower(strings.TrimSpace(s[i:])) {
	case "", "b":
		multiplier = 1
	case "kb":
		multiplier = 1e3
	case "mb":
		multiplier = 1e6
	case "gb":
		multiplier = 1e9
	case "kib":
		multiplier = 1024
	case "mib":
		multiplier = 1024 * 1024
	case "gib":
		multiplier = float64(gib)
	default:
		return 0, fmt.Errorf("unknown size suffix in %q", input)
	}
	return int64(value*multiplier + 0.5), nil
}

// client is one benchmark connection.
type client struct {
	conn     *websocket.Conn
	cfg      benchConfig
	counters *benchCounters
	errs     *benchErrors
	items    int
}

func runClient(
	ctx context.Context,
	wsURL string,
	clientID int,
	cfg benchConfig,
	counters *benchCounters,
	errCounts *benchErrors,
	samples chan<- sample,
) error {
	conn, _, err := websocket.DefaultDialer.DialContext(ctx, wsURL, nil)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		errCounts.dialFailures.Add(1)
		return fmt.Errorf("dial: %w", err)
	}
	defer conn.Close()

	c := &client{conn: conn, cfg: cfg, counters: counters, errs: errCounts}

	// The session mounts with a replace frame carrying the rendered list.
	conn.SetReadDeadline(time.Now().Add(cfg.EventTimeout))
	mount, err := c.readFrame()
	if err != nil {
		errCounts.mountFailures.Add(1)
		return fmt.Errorf("mount: %w", err)
	}
	if mount.Type != protocol.FrameReplace {
		errCounts.mountFailures.Add(1)
		return fmt.Errorf("mount: expected replace frame, got %q", mount.Type)
	}
	c.items = strings.Count(mount.HTML, `data-key="`)
	if c.items < 2 {
		errCounts.mountFailures.Add(1)
		return fmt.Errorf("mount: list has %d items", c.items)
	}

	rng := rand.New(rand.NewPCG(uint64(clientID), uint64(time.Now().UnixNano())))
	period := time.Duration(float64(time.Second) / cfg.RPS)

	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}

		start := time.Now()
		from := rng.IntN(c.items)
		to := rng.IntN(c.items - 1)
		if to >= from {
			to++
		}

		for _, et := range gestureEvents {
			rtt, err := c.roundTrip(gestureHID(et, from, to), et)
			if err != nil {
				if ctx.Err() != nil {
					return nil
				}
				return err
			}
			samples <- sample{event: et, rtt: rtt}
		}
		counters.gestures.Add(1)

		if sleep := period - time.Since(start); sleep > 0 {
			timer := time.NewTimer(sleep)
			select {
			case <-ctx.Done():
				timer.Stop()
				return nil
			case <-timer.C:
			}
		}
	}
}

// gestureHID returns the hydration ID an event targets. The container is
// rendered first (h1) and items follow in list order (h2, h3, ...); HIDs
// are reassigned on every replace so positions stay stable.
func gestureHID(et protocol.EventType, from, to int) string {
	switch et {
	case protocol.EventDrop:
		return "h1"
	case protocol.EventDragEnter, protocol.EventDragLeave:
		return "h" + strconv.Itoa(to+2)
	default:
		return "h" + strconv.Itoa(from+2)
	}
}

// roundTrip sends one event and waits for its single reply frame.
func (c *client) roundTrip(hid string, et protocol.EventType) (time.Duration, error) {
	data, err := protocol.NewEvent(hid, et).Encode()
	if err != nil {
		return 0, err
	}

	start := time.Now()
	if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
		c.errs.eventWriteFailures.Add(1)
		return 0, fmt.Errorf("event write: %w", err)
	}
	c.counters.eventsSent.Add(1)
	c.counters.eventBytes.Add(uint64(len(data)))

	c.conn.SetReadDeadline(time.Now().Add(c.cfg.EventTimeout))
	frame, err := c.readFrame()
	if err != nil {
		if isTimeout(err) {
			c.errs.timeouts.Add(1)
		}
		return 0, err
	}
	rtt := time.Since(start)

	switch frame.Type {
	case protocol.FramePatch, protocol.FrameReplace:
		c.counters.eventsComplete.Add(1)
		return rtt, nil
	case protocol.FrameError:
		c.errs.serverErrorFrames.Add(1)
		return 0, fmt.Errorf("server error frame: %s: %s", frame.Code, frame.Message)
	default:
		c.errs.unexpectedFrames.Add(1)
		return 0, fmt.Errorf("unexpected %q frame", frame.Type)
	}
}

// readFrame reads and decodes the next frame, counting payload bytes.
func (c *client) readFrame() (*protocol.Frame, error) {
	_, msg, err := c.conn.ReadMessage()
	if err != nil {
		return nil, err
	}
	frame, err := protocol.DecodeFrame(msg)
	if err != nil {
		c.errs.frameDecodeFailures.Add(1)
		return nil, err
	}
	switch frame.Type {
	case protocol.FramePatch:
		c.counters.patchFrames.Add(1)
		c.counters.patchesTotal.Add(uint64(len(frame.Patches)))
		c.counters.patchBytes.Add(uint64(len(msg)))
	case protocol.FrameReplace:
		c.counters.replaceFrames.Add(1)
		c.counters.replaceBytes.Add(uint64(len(msg)))
	}
	return frame, nil
}

func isTimeout(err error) bool {
	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}
	return false
}
