package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/bytedance/sonic"

	"github.com/GriffinCanCode/AgentOS/shell/internal/client"
	"github.com/GriffinCanCode/AgentOS/shell/internal/domain/app"
)

const usage = `usage: shellctl [-addr URL] <command> [args]

commands:
  launcher                     list launcher rows
  pinned                       list pinned application ids
  pin <app-id> [index]         pin an application
  unpin <app-id>               unpin an application
  move <from> <to>             move a launcher row
  remove <app-id>              request removal of an application
  count <app-id> <n> [hide]    set an application badge
  quicklist <app-id>           list quick-list actions
  invoke <app-id> <index>      trigger a quick-list action
  categories                   list categories
  results <row>                list the results of a category
  reset <n>                    replace categories with n synthesized ones
  counters                     list count sources
  counter <name> <n>           set a count source
  apps                         list running applications
  start <app-id>               start an application
  state <app-id> <state>       change application state
  stop <app-id>                stop an application
  search [query]               search the application catalog
  reload                       reload the application catalog
`

func main() {
	addr := flag.String("addr", envOr("SHELL_ADDR", "http://localhost:8000"), "Shell server address")
	timeout := flag.Duration("timeout", 10*time.Second, "Request timeout")
	flag.Usage = func() { fmt.Fprint(os.Stderr, usage) }
	flag.Parse()

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	cfg := client.DefaultConfig()
	cfg.BaseURL = *addr
	cfg.Timeout = *timeout

	ctx, cancel := context.WithTimeout(context.Background(), *timeout*time.Duration(cfg.MaxRetries+1))
	defer cancel()

	out, err := run(ctx, client.New(cfg), flag.Arg(0), flag.Args()[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, "shellctl:", err)
		os.Exit(1)
	}
	if out != nil {
		data, err := sonic.ConfigStd.MarshalIndent(out, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "shellctl:", err)
			os.Exit(1)
		}
		fmt.Println(string(data))
	}
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// run executes one command and returns what to print, if anything.
func run(ctx context.Context, c *client.Client, cmd string, args []string) (any, error) {
	need := func(n int) error {
		if len(args) < n {
			return fmt.Errorf("%s: expected %d argument(s), see -h", cmd, n)
		}
		return nil
	}
	num := func(i int) (int, error) {
		n, err := strconv.Atoi(args[i])
		if err != nil {
			return 0, fmt.Errorf("%s: %q is not a number", cmd, args[i])
		}
		return n, nil
	}

	switch cmd {
	case "launcher":
		return c.Launcher(ctx)
	case "pinned":
		return c.Pinned(ctx)
	case "pin":
		if err := need(1); err != nil {
			return nil, err
		}
		index := -1
		if len(args) > 1 {
			n, err := num(1)
			if err != nil {
				return nil, err
			}
			index = n
		}
		return nil, c.Pin(ctx, args[0], index)
	case "unpin":
		if err := need(1); err != nil {
			return nil, err
		}
		return nil, c.Unpin(ctx, args[0])
	case "move":
		if err := need(2); err != nil {
			return nil, err
		}
		from, err := num(0)
		if err != nil {
			return nil, err
		}
		to, err := num(1)
		if err != nil {
			return nil, err
		}
		return nil, c.Move(ctx, from, to)
	case "remove":
		if err := need(1); err != nil {
			return nil, err
		}
		return nil, c.Remove(ctx, args[0])
	case "count":
		if err := need(2); err != nil {
			return nil, err
		}
		n, err := num(1)
		if err != nil {
			return nil, err
		}
		visible := len(args) < 3 || args[2] != "hide"
		return nil, c.SetCount(ctx, args[0], n, visible)
	case "quicklist":
		if err := need(1); err != nil {
			return nil, err
		}
		return c.QuickList(ctx, args[0])
	case "invoke":
		if err := need(2); err != nil {
			return nil, err
		}
		index, err := num(1)
		if err != nil {
			return nil, err
		}
		return nil, c.Invoke(ctx, args[0], index)
	case "categories":
		return c.Categories(ctx)
	case "results":
		if err := need(1); err != nil {
			return nil, err
		}
		row, err := num(0)
		if err != nil {
			return nil, err
		}
		return c.Results(ctx, row)
	case "reset":
		if err := need(1); err != nil {
			return nil, err
		}
		n, err := num(0)
		if err != nil {
			return nil, err
		}
		return nil, c.ResetCategories(ctx, n)
	case "counters":
		return c.Counters(ctx)
	case "counter":
		if err := need(2); err != nil {
			return nil, err
		}
		n, err := num(1)
		if err != nil {
			return nil, err
		}
		return nil, c.SetCounter(ctx, args[0], n)
	case "apps":
		return c.Apps(ctx)
	case "start":
		if err := need(1); err != nil {
			return nil, err
		}
		return nil, c.Start(ctx, args[0])
	case "state":
		if err := need(2); err != nil {
			return nil, err
		}
		state, err := app.ParseState(args[1])
		if err != nil {
			return nil, err
		}
		return nil, c.SetState(ctx, args[0], state)
	case "stop":
		if err := need(1); err != nil {
			return nil, err
		}
		return nil, c.Stop(ctx, args[0])
	case "search":
		query := ""
		if len(args) > 0 {
			query = args[0]
		}
		return c.Search(ctx, query)
	case "reload":
		n, err := c.ReloadCatalog(ctx)
		if err != nil {
			return nil, err
		}
		return map[string]int{"loaded": n}, nil
	}
	return nil, fmt.Errorf("unknown command %q, see -h", cmd)
}
