package commandxredis

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/redis/go-redis/v9"

	"github.com/Abraxas-365/reactx/pkg/asyncx"
	"github.com/Abraxas-365/reactx/pkg/logx"
	"github.com/Abraxas-365/reactx/pkg/streamx"
)

// Source is an enabled signal for a command kept in Redis: the current
// value lives in a key and every change is announced on a pub/sub channel.
// Any process can flip a command on or off with Set.
type Source struct {
	rdb     *redis.Client
	key     string
	channel string
}

// NewSource creates a source for the given key and channel.
func NewSource(rdb *redis.Client, key, channel string) *Source {
	return &Source{rdb: rdb, key: key, channel: channel}
}

// KeyFor joins a key or channel prefix with a command name.
func KeyFor(prefix, name string) string { return prefix + ":" + name }

// Key returns the key holding the current value.
func (s *Source) Key() string { return s.key }

// Channel returns the channel changes are published on.
func (s *Source) Channel() string { return s.channel }

// Current reads the stored value. ok is false when the key is not set.
func (s *Source) Current(ctx context.Context) (enabled, ok bool, err error) {
	raw, err := s.rdb.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return false, false, nil
	}
	if err != nil {
		return false, false, redisErrors.NewWithCause(ErrRead, err).WithDetail("key", s.key)
	}
	enabled, err = ParseEnabled(raw)
	if err != nil {
		return false, false, err
	}
	return enabled, true, nil
}

// Set stores enabled and announces it to every subscriber.
func (s *Source) Set(ctx context.Context, enabled bool) error {
	value := FormatEnabled(enabled)
	pipe := s.rdb.TxPipeline()
	pipe.Set(ctx, s.key, value, 0)
	pipe.Publish(ctx, s.channel, value)
	if _, err := pipe.Exec(ctx); err != nil {
		return redisErrors.NewWithCause(ErrWrite, err).WithDetail("key", s.key)
	}
	return nil
}

// Stream returns the signal as a stream for commandx.WithEnabled. Each
// subscription subscribes to the channel first, then emits the stored value
// if there is one, then every announced change. The stream completes when
// ctx is done and fails if the channel subscription cannot be established.
// Malformed messages are logged and skipped.
func (s *Source) Stream(ctx context.Context) streamx.Stream[bool] {
	return streamx.Create(func(o streamx.Observer[bool]) func() {
		ctx, cancel := context.WithCancel(ctx)
		pubsub := s.rdb.Subscribe(ctx, s.channel)
		asyncx.Do(func() { s.listen(ctx, pubsub, o) })
		return cancel
	})
}

func (s *Source) listen(ctx context.Context, pubsub *redis.PubSub, o streamx.Observer[bool]) {
	defer pubsub.Close()
	log := logx.WithFields(logx.Fields{"key": s.key, "channel": s.channel})

	if _, err := pubsub.Receive(ctx); err != nil {
		if ctx.Err() != nil {
			o.OnComplete()
			return
		}
		o.OnError(redisErrors.NewWithCause(ErrSubscribe, err).WithDetail("channel", s.channel))
		return
	}

	if enabled, ok, err := s.Current(ctx); err != nil {
		log.WithError(err).Warn("commandxredis: failed to read enabled flag")
	} else if ok {
		o.OnNext(enabled)
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			o.OnComplete()
			return
		case msg, open := <-messages:
			if !open {
				o.OnComplete()
				return
			}
			enabled, err := ParseEnabled(msg.Payload)
			if err != nil {
				log.WithError(err).Warn("commandxredis: ignoring malformed message")
				continue
			}
			o.OnNext(enabled)
		}
	}
}

// ParseEnabled parses a stored or published flag.
func ParseEnabled(raw string) (bool, error) {
	switch v := strings.ToLower(strings.TrimSpace(raw)); v {
	case "on", "enabled", "yes":
		return true, nil
	case "off", "disabled", "no":
		return false, nil
	default:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return false, redisErrors.NewWithCause(ErrParse, err).WithDetail("value", raw)
		}
		return b, nil
	}
}

// FormatEnabled is the wire form of a flag.
func FormatEnabled(enabled bool) string {
	return strconv.FormatBool(enabled)
}
