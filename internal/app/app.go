package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/hashicorp/go-multierror"

	"github.com/roach88/volt/internal/api"
	"github.com/roach88/volt/internal/clock"
	"github.com/roach88/volt/internal/config"
	"github.com/roach88/volt/internal/ids"
	"github.com/roach88/volt/internal/model"
	"github.com/roach88/volt/internal/project"
	"github.com/roach88/volt/internal/session"
	"github.com/roach88/volt/internal/storage"
	"github.com/roach88/volt/internal/templates"
	"github.com/roach88/volt/internal/toast"
	"github.com/roach88/volt/internal/workspace"
)

// App is one client session.
type App struct {
	Toasts     *toast.Queue
	Session    *session.Store
	Workspaces *workspace.Store
	Projects   *project.Store
	API        *api.Client

	templates []model.ProjectTemplate
	kv        storage.KV
	closer    io.Closer
	clock     clock.Clock
	ids       ids.Generator
	logger    *slog.Logger
}

type options struct {
	clock  clock.Clock
	ids    ids.Generator
	logger *slog.Logger
	kv     storage.KV
}

// Option configures New.
type Option func(*options)

// WithClock overrides the clock shared by every container.
func WithClock(c clock.Clock) Option {
	return func(o *options) { o.clock = c }
}

// WithIDs overrides the id generator for toasts and new projects.
func WithIDs(g ids.Generator) Option {
	return func(o *options) { o.ids = g }
}

// WithLogger overrides slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithKV uses kv instead of opening the SQLite file named by the config.
// The caller keeps ownership of kv.
func WithKV(kv storage.KV) Option {
	return func(o *options) { o.kv = kv }
}

// New opens durable storage, builds the containers and the API client,
// loads the template catalogue and restores a persisted user.
func New(ctx context.Context, cfg config.Config, opts ...Option) (*App, error) {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.logger == nil {
		o.logger = slog.Default()
	}
	o.clock = clock.OrSystem(o.clock)
	o.ids = ids.OrDefault(o.ids)

	a := &App{
		kv:     o.kv,
		clock:  o.clock,
		ids:    o.ids,
		logger: o.logger,
	}

	if a.kv == nil {
		db, err := openStorage(cfg.Storage.Path)
		if err != nil {
			return nil, err
		}
		a.kv = db
		a.closer = db
	}

	client, err := api.New(cfg.API, api.WithLogger(o.logger), api.WithOnUnauthorized(a.onUnauthorized))
	if err != nil {
		return nil, a.abort(err)
	}
	catalogue, err := templates.Load()
	if err != nil {
		return nil, a.abort(fmt.Errorf("load templates: %w", err))
	}

	a.API = client
	a.templates = catalogue
	a.Toasts = toast.New(toast.WithClock(o.clock), toast.WithIDs(o.ids))
	a.Session = session.New(a.kv, session.WithLogger(o.logger))
	a.Workspaces = workspace.New(o.clock)
	a.Projects = project.New(o.clock)
	a.Projects.SetTemplates(catalogue)

	if err := a.Session.InitFromStorage(ctx); err != nil {
		return nil, a.abort(err)
	}
	o.logger.Debug("app ready", "api", cfg.API.BaseURL, "authenticated", a.Session.State().Authenticated)
	return a, nil
}

func openStorage(path string) (*storage.SQLite, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create storage dir: %w", err)
		}
	}
	db, err := storage.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open storage %s: %w", path, err)
	}
	return db, nil
}

// Close closes every container and the storage it opened.
func (a *App) Close() error {
	// Containers are nil when New failed before building them.
	if a.Toasts != nil {
		a.Toasts.Close()
		a.Session.Close()
		a.Workspaces.Close()
		a.Projects.Close()
	}
	return a.closeStorage()
}

func (a *App) closeStorage() error {
	if a.closer == nil {
		return nil
	}
	err := a.closer.Close()
	a.closer = nil
	if err != nil {
		return fmt.Errorf("close storage: %w", err)
	}
	return nil
}

// abort tears down a partially built App after cause. A failure to close
// storage is reported alongside cause, not instead of it.
func (a *App) abort(cause error) error {
	result := &multierror.Error{ErrorFormat: joinErrors}
	result = multierror.Append(result, cause)
	if err := a.Close(); err != nil {
		result = multierror.Append(result, err)
	}
	if len(result.Errors) == 1 {
		return cause
	}
	return result
}

func joinErrors(errs []error) string {
	msgs := make([]string, len(errs))
	for i, err := range errs {
		msgs[i] = err.Error()
	}
	return strings.Join(msgs, "; ")
}

// StoredEntry describes one key in durable storage.
type StoredEntry struct {
	Key   string `json:"key"`
	Bytes int    `json:"bytes"`
}

// StoredEntries lists what durable storage holds, by key in ascending order.
func (a *App) StoredEntries(ctx context.Context) ([]StoredEntry, error) {
	lister, ok := a.kv.(storage.Lister)
	if !ok {
		return nil, fmt.Errorf("storage %T cannot list keys", a.kv)
	}
	keys, err := lister.Keys(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]StoredEntry, 0, len(keys))
	for _, k := range keys {
		v, err := a.kv.Get(ctx, k)
		if errors.Is(err, storage.ErrNotFound) {
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("read %q: %w", k, err)
		}
		out = append(out, StoredEntry{Key: k, Bytes: len(v)})
	}
	return out, nil
}

// Templates returns the project template catalogue.
func (a *App) Templates() []model.ProjectTemplate {
	return a.templates
}

// resetData clears workspace and project data. Templates survive.
func (a *App) resetData() {
	a.Workspaces.Reset()
	a.Projects.Reset()
	a.Projects.SetTemplates(a.templates)
}

// onUnauthorized runs when the backend rejects the session cookie.
func (a *App) onUnauthorized() {
	if a.Session == nil {
		return
	}
	a.logger.Info("session rejected by server, logging out")
	if err := a.Session.Logout(context.Background()); err != nil {
		a.logger.Warn("logout after 401", "error", err)
	}
	a.resetData()
}

// Register creates an account and signs in as it.
func (a *App) Register(ctx context.Context, r api.Registration) (*model.User, error) {
	a.Session.SetLoading(true)
	resp, err := a.API.Register(ctx, r)
	if err != nil {
		a.Session.SetLoading(false)
		a.Toasts.Error("Registration failed: " + message(err))
		return nil, err
	}
	if err := a.Session.SetUser(ctx, resp.User); err != nil {
		return &resp.User, err
	}
	a.Toasts.Success("Account created")
	return &resp.User, nil
}

// Login signs in and persists the user.
func (a *App) Login(ctx context.Context, email, password string) (*model.User, error) {
	a.Session.SetLoading(true)
	resp, err := a.API.Login(ctx, api.Credentials{Email: email, Password: password})
	if err != nil {
		a.Session.SetLoading(false)
		a.Toasts.Error("Login failed: " + message(err))
		return nil, err
	}
	if err := a.Session.SetUser(ctx, resp.User); err != nil {
		return &resp.User, err
	}
	a.Toasts.Success("Welcome back, " + displayName(resp.User))
	return &resp.User, nil
}

// Logout ends the server session and always clears local state. A failed
// server logout is logged, not returned.
func (a *App) Logout(ctx context.Context) error {
	if err := a.API.Logout(ctx); err != nil {
		a.logger.Debug("server logout failed, logging out locally", "error", err)
	}
	err := a.Session.Logout(ctx)
	a.resetData()
	return err
}

// Refresh asks the server who the session belongs to and updates the stored
// user.
func (a *App) Refresh(ctx context.Context) (*model.User, error) {
	user, err := a.API.Me(ctx)
	if err != nil {
		return nil, err
	}
	if err := a.Session.SetUser(ctx, *user); err != nil {
		return user, err
	}
	return user, nil
}

// LoadWorkspaces fetches the user's workspaces into the workspace state.
func (a *App) LoadWorkspaces(ctx context.Context) ([]model.Workspace, error) {
	a.Workspaces.SetLoading(true)
	defer a.Workspaces.SetLoading(false)

	list, err := a.API.Workspaces(ctx)
	if err != nil {
		a.fail("Failed to load workspaces", err)
		return nil, err
	}
	a.Workspaces.SetError("")
	a.Workspaces.SetWorkspaces(list)
	return list, nil
}

// CreateWorkspace creates a workspace and appends it to the list.
func (a *App) CreateWorkspace(ctx context.Context, name, description string) (*model.Workspace, error) {
	ws, err := a.API.CreateWorkspace(ctx, api.NamedInput{Name: name, Description: description})
	if err != nil {
		a.fail("Failed to create workspace", err)
		return nil, err
	}
	a.Workspaces.AddWorkspace(*ws)
	a.Toasts.Success("Workspace created")
	return ws, nil
}

// SelectWorkspace makes id the current workspace, fetching it when it is not
// in the loaded list, and loads its collections.
func (a *App) SelectWorkspace(ctx context.Context, id string) (*model.Workspace, error) {
	var selected *model.Workspace
	for _, ws := range a.Workspaces.State().Workspaces {
		if ws.ID == id {
			selected = &ws
			break
		}
	}
	if selected == nil {
		ws, err := a.API.Workspace(ctx, id)
		if err != nil {
			a.fail("Failed to load workspace", err)
			return nil, err
		}
		selected = ws
	}

	a.Workspaces.SetCurrentWorkspace(selected)
	if _, err := a.Collections(ctx, id); err != nil {
		return selected, err
	}
	return selected, nil
}

// Collections returns the collections of workspaceID through the cache.
func (a *App) Collections(ctx context.Context, workspaceID string) ([]model.Collection, error) {
	if cached, ok := a.Workspaces.GetCachedCollections(workspaceID); ok {
		a.Workspaces.ShowCollections(workspaceID, cached)
		return cached, nil
	}

	if entry, ok := a.Workspaces.Entry(workspaceID); ok {
		a.Workspaces.ShowCollections(workspaceID, entry.Data)
		a.Workspaces.SetRefreshing(workspaceID, true)
		a.logger.Debug("refreshing stale collections", "workspace_id", workspaceID, "age", a.clock.Now().Sub(entry.Timestamp))
	} else {
		a.Workspaces.SetLoading(true)
		defer a.Workspaces.SetLoading(false)
	}

	list, err := a.API.Collections(ctx, workspaceID)
	if err != nil {
		a.Workspaces.SetRefreshing(workspaceID, false)
		a.fail("Failed to load collections", err)
		return nil, err
	}
	a.Workspaces.SetError("")
	a.Workspaces.SetCachedCollections(workspaceID, list)
	return list, nil
}

// CreateCollection creates a collection in workspaceID. It is appended to
// the view when the view holds workspaceID's collections, and to an existing
// cache entry without refreshing that entry's timestamp.
func (a *App) CreateCollection(ctx context.Context, workspaceID, name, description string) (*model.Collection, error) {
	c, err := a.API.CreateCollection(ctx, workspaceID, api.NamedInput{Name: name, Description: description})
	if err != nil {
		a.fail("Failed to create collection", err)
		return nil, err
	}

	a.Workspaces.AddCachedCollection(workspaceID, *c)
	a.Toasts.Success("Collection created")
	return c, nil
}

// DeleteCollection deletes a collection and drops it from the view and every
// cache entry.
func (a *App) DeleteCollection(ctx context.Context, id string) error {
	if err := a.API.DeleteCollection(ctx, id); err != nil {
		a.fail("Failed to delete collection", err)
		return err
	}
	a.Workspaces.RemoveCollection(id)
	a.Toasts.Success("Collection deleted")
	return nil
}

// CreateProjectFromTemplate instantiates templateID as a new project owned by
// the current user and adds it to the project store.
func (a *App) CreateProjectFromTemplate(templateID string, start time.Time) (model.ProjectView, error) {
	tpl, ok := templates.Find(a.templates, templateID)
	if !ok {
		return model.ProjectView{}, fmt.Errorf("template %q: %w", templateID, project.ErrNotFound)
	}
	owner := ""
	if u := a.Session.State().User; u != nil {
		owner = u.ID
	}

	view := templates.Instantiate(tpl, a.ids.Generate(), owner, start, a.ids)
	p := view.Project
	p.Stats = model.ProjectStats{}
	if err := a.Projects.AddProject(p); err != nil {
		return model.ProjectView{}, err
	}
	for _, t := range view.Tasks {
		if err := a.Projects.AddTask(t); err != nil {
			return model.ProjectView{}, err
		}
	}
	for _, m := range view.Milestones {
		if err := a.Projects.AddMilestone(m); err != nil {
			return model.ProjectView{}, err
		}
	}

	out, _ := a.Projects.ProjectByID(p.ID)
	return out, nil
}

// fail records err on the workspace state and raises an error toast.
func (a *App) fail(prefix string, err error) {
	msg := prefix + ": " + message(err)
	a.Workspaces.SetError(msg)
	a.Toasts.Error(msg)
	a.logger.Debug(prefix, "error", err)
}

// message is the user-facing text of err.
func message(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}

func displayName(u model.User) string {
	if u.Username != "" {
		return u.Username
	}
	return u.Email
}
