package health

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"
)

func staticChecker(name string, result Result) Checker {
	return NewCheckerFunc(name, func(ctx context.Context) Result {
		return result
	})
}

func TestAggregator_RegisterAndNames(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("breaker", Healthy("ok")))
	agg.Register(staticChecker("wallet-api", Healthy("ok")))

	names := agg.CheckerNames()
	want := []string{"breaker", "wallet-api"}
	if len(names) != len(want) {
		t.Fatalf("CheckerNames() = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("CheckerNames()[%d] = %q, want %q", i, names[i], want[i])
		}
	}
}

func TestAggregator_RegisterReplaces(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("breaker", Unhealthy("open", ErrCheckFailed)))
	agg.Register(staticChecker("breaker", Healthy("closed")))

	if got := agg.CheckerNames(); len(got) != 1 {
		t.Fatalf("CheckerNames() = %v, want one entry", got)
	}

	result, err := agg.Check(context.Background(), "breaker")
	if err != nil {
		t.Fatalf("Check() error = %v", err)
	}
	if result.Status != StatusHealthy {
		t.Errorf("Check().Status = %v, want healthy", result.Status)
	}
}

func TestAggregator_Unregister(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("breaker", Healthy("ok")))
	agg.Unregister("breaker")

	if got := agg.CheckerNames(); len(got) != 0 {
		t.Errorf("CheckerNames() = %v, want empty", got)
	}
	if _, err := agg.Check(context.Background(), "breaker"); !errors.Is(err, ErrCheckerNotFound) {
		t.Errorf("Check() error = %v, want ErrCheckerNotFound", err)
	}
}

func TestAggregator_CheckAll(t *testing.T) {
	agg := NewAggregator()
	agg.Register(staticChecker("breaker", Healthy("closed")))
	agg.Register(staticChecker("wallet-api", Degraded("slow")))
	agg.Register(staticChecker("quota", Unhealthy("exceeded", ErrCheckFailed)))

	results := agg.CheckAll(context.Background())
	if len(results) != 3 {
		t.Fatalf("CheckAll() returned %d results, want 3", len(results))
	}

	var names []string
	for name := range results {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"breaker", "quota", "wallet-api"}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("result name %q, want %q", names[i], want[i])
		}
	}

	if results["breaker"].Duration < 0 {
		t.Error("CheckAll() did not record duration")
	}
}

func TestAggregator_CheckAllSequential(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Parallel: false})
	agg.Register(staticChecker("breaker", Healthy("ok")))
	agg.Register(staticChecker("wallet-api", Healthy("ok")))

	results := agg.CheckAll(context.Background())
	if len(results) != 2 {
		t.Errorf("CheckAll() returned %d results, want 2", len(results))
	}
}

func TestAggregator_CheckAllEmpty(t *testing.T) {
	agg := NewAggregator()
	if results := agg.CheckAll(context.Background()); len(results) != 0 {
		t.Errorf("CheckAll() = %v, want empty", results)
	}
	if got := agg.OverallStatus(nil); got != StatusHealthy {
		t.Errorf("OverallStatus(nil) = %v, want healthy", got)
	}
}

func TestAggregator_OverallStatus(t *testing.T) {
	agg := NewAggregator()

	tests := []struct {
		name    string
		results map[string]Result
		want    Status
	}{
		{
			name: "all healthy",
			results: map[string]Result{
				"a": Healthy(""), "b": Healthy(""),
			},
			want: StatusHealthy,
		},
		{
			name: "one degraded",
			results: map[string]Result{
				"a": Healthy(""), "b": Degraded(""),
			},
			want: StatusDegraded,
		},
		{
			name: "unhealthy wins over degraded",
			results: map[string]Result{
				"a": Degraded(""), "b": Unhealthy("", nil),
			},
			want: StatusUnhealthy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := agg.OverallStatus(tt.results); got != tt.want {
				t.Errorf("OverallStatus() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestAggregator_CheckTimeout(t *testing.T) {
	agg := NewAggregator(AggregatorConfig{Timeout: 20 * time.Millisecond})
	agg.Register(NewCheckerFunc("stuck", func(ctx context.Context) Result {
		<-ctx.Done()
		time.Sleep(time.Second)
		return Healthy("too late")
	}))

	results := agg.CheckAll(context.Background())
	result, ok := results["stuck"]
	if !ok {
		t.Fatal("CheckAll() missing result for stuck checker")
	}
	if result.Status != StatusUnhealthy {
		t.Errorf("Status = %v, want unhealthy", result.Status)
	}
	if !errors.Is(result.Error, ErrCheckTimeout) {
		t.Errorf("Error = %v, want ErrCheckTimeout", result.Error)
	}
}
