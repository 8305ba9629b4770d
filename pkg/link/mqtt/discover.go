package mqtt

import (
	"context"
	"encoding/json"
	"sort"
	"strings"
	"time"

	"github.com/golang/glog"
)

// DefaultDiscoverTimeout defines the default timeout value of discovery.
const DefaultDiscoverTimeout = 500 * time.Millisecond

// ParseMeta decodes an announcement. An empty payload means
// the device went offline.
func ParseMeta(topic string, payload []byte) (meta Meta, online bool, err error) {
	if len(payload) == 0 {
		meta.Name = strings.TrimSuffix(topic, "/"+TopicMeta)
		return
	}
	if err = json.Unmarshal(payload, &meta); err != nil {
		return
	}
	if meta.Name == "" {
		meta.Name = strings.TrimSuffix(topic, "/"+TopicMeta)
	}
	return meta, true, nil
}

// Discover collects devices announced on the connected queue until
// timeout. Results are sorted by name.
func Discover(ctx context.Context, q *Queue, timeout time.Duration) ([]Meta, error) {
	metaCh := make(chan Meta, 16)
	sub := q.Sub("+/"+TopicMeta, Handler(func(topic string, payload []byte) {
		meta, online, err := ParseMeta(topic, payload)
		if err != nil {
			glog.Warningf("invalid meta on %q: %v", topic, err)
			return
		}
		if !online {
			return
		}
		select {
		case metaCh <- meta:
		case <-time.After(time.Second):
		}
	}))
	defer sub.Close()

	if timeout <= 0 {
		timeout = DefaultDiscoverTimeout
	}
	found := make(map[string]Meta)
	expired := time.After(timeout)
	for {
		select {
		case meta := <-metaCh:
			found[meta.Name] = meta
		case <-expired:
			res := make([]Meta, 0, len(found))
			for _, meta := range found {
				res = append(res, meta)
			}
			sort.Slice(res, func(i, j int) bool { return res[i].Name < res[j].Name })
			return res, nil
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}
