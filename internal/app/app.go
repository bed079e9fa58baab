package app

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/karandattani71/vaultview/internal/cache"
	"github.com/karandattani71/vaultview/internal/catalog"
	"github.com/karandattani71/vaultview/internal/config"
	"github.com/karandattani71/vaultview/internal/filter"
	"github.com/karandattani71/vaultview/internal/ui"
)

// Options configure the vaultview application.
type Options struct {
	ConfigPath  string
	APIBind     string // overrides the config file when set
	PollSeconds int    // zero uses the configured value
}

// Run boots the vaultview TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if opts.APIBind != "" {
		cfg.APIBind = opts.APIBind
	}
	if opts.PollSeconds > 0 {
		cfg.PollInterval = secondsToDuration(opts.PollSeconds)
	}

	client, err := catalog.NewClient(cfg.APIBind)
	if err != nil {
		return fmt.Errorf("init catalog client: %w", err)
	}

	controller := filter.NewController(cfg.SearchDebounce)
	defer controller.Close()

	// The program does not exist until after the coordinator, so completion
	// notifications go through this indirection.
	var program *tea.Program
	coordinator := cache.NewCoordinator(ctx, fetchFor(client, cfg.PageSize), cache.Options{
		TTL: cfg.CacheTTL,
		OnUpdate: func(entry cache.Entry) {
			if program != nil {
				program.Send(ui.CacheUpdatedMsg{Entry: entry})
			}
		},
	})

	controller.Subscribe(func(state filter.State) {
		if program != nil {
			program.Send(ui.FilterChangedMsg{State: state})
		}
	})

	model := ui.New(ui.Options{
		Context:     ctx,
		Client:      client,
		Controller:  controller,
		Coordinator: coordinator,
	})

	program = tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(ctx), tea.WithReportFocus())

	StartPoller(ctx, coordinator, cfg.PollInterval)

	if _, err := program.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}
	return nil
}

// fetchFor maps cache keys onto catalog reads. The page size rides along as
// an extra parameter on file-list fetches; the server ignores parameters it
// does not know.
func fetchFor(client *catalog.Client, pageSize int) cache.FetchFunc {
	return func(ctx context.Context, key cache.Key) (any, error) {
		switch {
		case key == cache.KeyStats:
			return client.FetchStats(ctx)
		case key == cache.KeyFileTypes:
			return client.FetchFileTypes(ctx)
		default:
			encoded, ok := cache.FileListQuery(key)
			if !ok {
				return nil, fmt.Errorf("unknown cache key %q", key)
			}
			query, err := url.ParseQuery(encoded)
			if err != nil {
				return nil, fmt.Errorf("parse cached query: %w", err)
			}
			if pageSize > 0 {
				query.Set("page_size", strconv.Itoa(pageSize))
			}
			return client.FetchFiles(ctx, query)
		}
	}
}
