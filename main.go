package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/wayming/fdc/collector"
	"github.com/wayming/fdc/config"
)

func main() {

	collectOpt := flag.Bool("collect", false,
		"Collect daily and historical metrics for all active symbols and load them into the fact table.")
	verifyOpt := flag.Bool("verify", false,
		"Probe every symbol for recent trading data and refresh the delisted flag.")
	symbolOpt := flag.String("symbol", "", "Collect metrics for the specified symbol only.")
	parallelOpt := flag.Int("parallel", 0, "Parallel streams of collection. Defaults to the configured value.")
	continueOpt := flag.Bool("continue", false, "Continue an interrupted run from the cached retry sets.")
	resetDBOpt := flag.Bool("reset_db", false, "Drop the existing data.")
	resetCacheOpt := flag.Bool("reset_cache", false, "Reset caches.")
	requeueOpt := flag.Bool("requeue_invalid", false,
		"Move permanently failed symbols back into the pending set for a continued run.")

	flag.Parse()

	cfg := config.FromEnv()
	if *parallelOpt > 0 {
		cfg.Parallel = *parallelOpt
	}

	if *resetDBOpt {
		if err := collector.DropSchema(cfg); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Println("Drop schema " + cfg.Schema + " done.")
	}
	if *resetCacheOpt {
		if err := collector.ClearCache(cfg); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Println("Reset cache done.")
	}
	if *requeueOpt {
		count, err := collector.RequeueInvalid(cfg)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Requeued %d invalid symbols.\n", count)
	}

	switch {
	case *symbolOpt != "":
		summary, err := collector.CollectForSymbol(cfg, *symbolOpt)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Collected %d rows for %s in %d passes.\n", summary.Rows, *symbolOpt, summary.Passes)
	case *collectOpt:
		summary, err := collector.Collect(cfg, *continueOpt)
		if err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Printf("Collection done: %d symbols succeeded, %d rows committed, %d permanent failures.\n",
			summary.Succeeded, summary.Rows, len(summary.Permanent))
	case *verifyOpt:
		if err := collector.Verify(cfg); err != nil {
			fmt.Println(err.Error())
			os.Exit(1)
		}
		fmt.Println("Verification done.")
	}

	os.Exit(0)
}
