package box

import (
	"fmt"
	"strings"
	"sync"
	"time"

	gometrics "github.com/rcrowley/go-metrics"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/wkhere/tarantool/cmd/util"
	"github.com/wkhere/tarantool/common"
)

var (
	perfCmd = &cobra.Command{
		Use:     "perf",
		Short:   "Latency benchmark against a server",
		RunE:    runPerf,
		PreRunE: processPerfConfig,
	}
	perfRequests = 1000
	perfThreads  = 10
	perfSpace    = uint32(0)
	perfSkip     = make([]string, 0)
)

func init() {
	// add flags
	key := "requests"
	perfCmd.Flags().Int(key, 1000, util.WrapString("Number of requests per benchmark"))
	key = "threads"
	perfCmd.Flags().Int(key, 10, util.WrapString("Number of concurrent callers"))
	key = "space"
	perfCmd.Flags().Uint32(key, 0, util.WrapString("Space to run the insert/select benchmarks in"))
	key = "skip"
	perfCmd.Flags().String(key, "", util.WrapString("Benchmarks to skip (comma separated - e.g. ping,insert)"))
}

func processPerfConfig(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}

	perfRequests = viper.GetInt("requests")
	perfThreads = viper.GetInt("threads")
	perfSpace = viper.GetUint32("space")
	perfSkip = strings.Split(viper.GetString("skip"), ",")

	return nil
}

func runPerf(_ *cobra.Command, _ []string) error {
	fmt.Println("Latency benchmark")
	fmt.Println()
	fmt.Println("Configuration:")
	fmt.Println(util.GetClientConfig().String())
	fmt.Printf("Requests: %d, Threads: %d\n\n", perfRequests, perfThreads)

	registry := gometrics.NewRegistry()

	if !shouldSkip("ping") {
		timer := gometrics.GetOrRegisterTimer("ping", registry)
		runTimed(timer, func(int) error {
			_, err := conn.Ping()
			return err
		})
		printTimer("ping", timer)
	}

	if !shouldSkip("insert") {
		timer := gometrics.GetOrRegisterTimer("insert", registry)
		runTimed(timer, func(i int) error {
			_, err := conn.Insert(perfSpace, perfTuple(i), nil)
			return err
		})
		printTimer("insert", timer)
	}

	if !shouldSkip("select") {
		timer := gometrics.GetOrRegisterTimer("select", registry)
		runTimed(timer, func(i int) error {
			_, err := conn.Select(perfSpace, 0, []common.Tuple{perfKey(i)}, nil)
			return err
		})
		printTimer("select", timer)
	}

	// cleanup benchmark tuples
	if !shouldSkip("insert") {
		for i := 0; i < perfRequests; i++ {
			if _, err := conn.Delete(perfSpace, perfKey(i), nil); err != nil {
				return fmt.Errorf("cleanup: %w", err)
			}
		}
	}

	return nil
}

// runTimed runs perfRequests calls of op across perfThreads goroutines,
// recording each call's latency in the timer.
func runTimed(timer gometrics.Timer, op func(i int) error) {
	var wg sync.WaitGroup
	next := make(chan int)

	for t := 0; t < perfThreads; t++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range next {
				start := time.Now()
				if err := op(i); err != nil {
					fmt.Printf("request %d failed: %v\n", i, err)
					continue
				}
				timer.Update(time.Since(start))
			}
		}()
	}

	for i := 0; i < perfRequests; i++ {
		next <- i
	}
	close(next)
	wg.Wait()
}

func printTimer(name string, timer gometrics.Timer) {
	ps := timer.Percentiles([]float64{0.5, 0.95, 0.99})
	fmt.Printf("%-8s count=%d mean=%v p50=%v p95=%v p99=%v rate=%.0f/s\n",
		name,
		timer.Count(),
		time.Duration(timer.Mean()),
		time.Duration(ps[0]),
		time.Duration(ps[1]),
		time.Duration(ps[2]),
		timer.RateMean(),
	)
}

func perfKey(i int) common.Tuple {
	return common.Tuple{common.FieldUint32(uint32(i))}
}

func perfTuple(i int) common.Tuple {
	return common.Tuple{common.FieldUint32(uint32(i)), common.Field("perf")}
}

func shouldSkip(name string) bool {
	for _, s := range perfSkip {
		if strings.TrimSpace(s) == name {
			return true
		}
	}
	return false
}
