package score

import (
	"fmt"
	"sort"
	"sync"
)

// Built-in metric names.
const (
	MetricSpearman    = "spearman"
	MetricPearson     = "pearson"
	MetricRMSE        = "rmse"
	MetricNRMSE       = "nrmse"
	MetricConcordance = "concordance"
)

var (
	registryMu sync.RWMutex
	registry   = map[string]Metric{
		MetricSpearman:    {Name: MetricSpearman, LargerIsBetter: true, Score: Scalar(Spearman)},
		MetricPearson:     {Name: MetricPearson, LargerIsBetter: true, Score: Scalar(Pearson)},
		MetricRMSE:        {Name: MetricRMSE, LargerIsBetter: false, Score: Scalar(RMSE)},
		MetricNRMSE:       {Name: MetricNRMSE, LargerIsBetter: false, Score: Scalar(NormalizedRMSE)},
		MetricConcordance: {Name: MetricConcordance, LargerIsBetter: true, Score: Survival(Concordance)},
	}
)

// Lookup returns the metric registered under name.
func Lookup(name string) (Metric, error) {
	registryMu.RLock()
	defer registryMu.RUnlock()

	m, ok := registry[name]
	if !ok {
		return Metric{}, fmt.Errorf("%w: %q", ErrUnknownMetric, name)
	}
	return m, nil
}

// Register adds a caller-supplied metric to the registry. Built-in names
// cannot be replaced.
func Register(m Metric) error {
	if m.Name == "" || m.Score == nil {
		return fmt.Errorf("%w: metric needs a name and a score function", ErrUnknownMetric)
	}

	registryMu.Lock()
	defer registryMu.Unlock()

	if _, ok := registry[m.Name]; ok {
		return fmt.Errorf("%w: %q", ErrDuplicateName, m.Name)
	}
	registry[m.Name] = m
	return nil
}

// Names lists the registered metric names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()

	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
