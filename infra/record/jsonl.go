package record

import (
	"bufio"
	"context"
	"encoding/json"
	"os"
	"sort"
	"sync"

	"github.com/google/uuid"

	"github.com/causewaylab/crossing/core/record"
)

// JSONLStore stores records as one JSON envelope per line, suitable for
// development and small deployments.
type JSONLStore struct {
	path string
	mu   sync.Mutex
}

type envelope struct {
	Kind     string                  `json:"kind"`
	Crossing *record.Crossing        `json:"crossing,omitempty"`
	Snapshot *record.TrafficSnapshot `json:"snapshot,omitempty"`
}

// NewJSONLStore creates the file when missing.
func NewJSONLStore(path string) (*JSONLStore, error) {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_RDWR, 0644)
	if err != nil {
		return nil, err
	}
	if cerr := f.Close(); cerr != nil {
		return nil, cerr
	}
	return &JSONLStore{path: path}, nil
}

func (s *JSONLStore) append(env envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	return json.NewEncoder(f).Encode(env)
}

// AddCrossing appends the crossing. A missing ID is generated.
func (s *JSONLStore) AddCrossing(ctx context.Context, c record.Crossing) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return s.append(envelope{Kind: "crossing", Crossing: &c})
}

// AddSnapshot appends the traffic snapshot.
func (s *JSONLStore) AddSnapshot(ctx context.Context, snap record.TrafficSnapshot) error {
	if snap.ID == "" {
		snap.ID = uuid.NewString()
	}
	return s.append(envelope{Kind: "snapshot", Snapshot: &snap})
}

func (s *JSONLStore) scan(fn func(envelope)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, err := os.Open(s.path)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var env envelope
		if err := json.Unmarshal(scanner.Bytes(), &env); err != nil {
			continue
		}
		fn(env)
	}
	return scanner.Err()
}

// RecentCrossings returns crossings matching q, newest first.
func (s *JSONLStore) RecentCrossings(ctx context.Context, q record.Query) ([]record.Crossing, error) {
	var out []record.Crossing
	err := s.scan(func(env envelope) {
		if env.Kind != "crossing" || env.Crossing == nil {
			return
		}
		c := *env.Crossing
		if !q.Since.IsZero() && c.Timestamp.Before(q.Since) {
			return
		}
		if q.Checkpoint != "" && c.Checkpoint != q.Checkpoint {
			return
		}
		out = append(out, c)
	})
	if err != nil {
		return nil, err
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Timestamp.After(out[j].Timestamp) })
	if q.Limit > 0 && len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

// AveragesByHour aggregates stored crossings for the checkpoint per hour
// of day.
func (s *JSONLStore) AveragesByHour(ctx context.Context, checkpoint string) ([]record.HourlyAverage, error) {
	type acc struct {
		total, wait float64
		count       int
	}
	byHour := map[int]*acc{}
	err := s.scan(func(env envelope) {
		if env.Kind != "crossing" || env.Crossing == nil {
			return
		}
		c := env.Crossing
		if c.Checkpoint != checkpoint {
			return
		}
		a, ok := byHour[c.HourOfDay]
		if !ok {
			a = &acc{}
			byHour[c.HourOfDay] = a
		}
		a.total += c.TotalTimeMinutes
		a.wait += c.WaitTimeMinutes
		a.count++
	})
	if err != nil {
		return nil, err
	}
	hours := make([]int, 0, len(byHour))
	for h := range byHour {
		hours = append(hours, h)
	}
	sort.Ints(hours)
	out := make([]record.HourlyAverage, 0, len(hours))
	for _, h := range hours {
		a := byHour[h]
		out = append(out, record.HourlyAverage{
			HourOfDay:   h,
			AvgMinutes:  a.total / float64(a.count),
			AvgWait:     a.wait / float64(a.count),
			SampleCount: a.count,
		})
	}
	return out, nil
}

// Close is a no-op for the file-backed store.
func (s *JSONLStore) Close() error { return nil }
