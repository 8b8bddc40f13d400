// Package statsd is a helper package that wraps some common statsd methods.
// It hides the datadog dependency so if we decide to migrate away from datadog in the future, we only need to
// edit this single file. For example, the https://pkg.go.dev/github.com/cactus/go-statsd-client/statsd package roughly
// implements datadog's ClientInterface interface.
package statsd

import (
	"time"

	ddstatsd "github.com/DataDog/datadog-go/v5/statsd"
	"github.com/rotisserie/eris"
	"github.com/rs/zerolog/log"
)

var client ddstatsd.ClientInterface = &ddstatsd.NoOpClient{}

func Client() ddstatsd.ClientInterface {
	return client
}

// EmitAllocStat counts an entity lifecycle event, e.g. entity.created,
// entity.recycled or entity.removed.
func EmitAllocStat(stat string) {
	err := Client().Count(stat, 1, nil, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit %s stat: %v", stat, err)
	}
}

// EmitResizeStat reports how long a capacity grow took, including resizing
// every registered entity store.
func EmitResizeStat(start time.Time) {
	duration := time.Since(start)
	err := Client().Timing("entity.resize", duration, nil, 1)
	if err != nil {
		log.Logger.Warn().Msgf("failed to emit resize stat: %v", err)
	}
}

func Init(address string, tags []string) error {
	if address == "" {
		return eris.New("address must not be empty")
	}
	opts := []ddstatsd.Option{
		// The statsd namespace is the prefix of all metrics
		ddstatsd.WithNamespace("lifecycle"),
	}
	if len(tags) > 0 {
		opts = append(opts, ddstatsd.WithTags(tags))
	}

	newClient, err := ddstatsd.New(address, opts...)
	if err != nil {
		return err
	}
	// Success! replace the global client
	client = newClient
	return nil
}
