package main

import (
	"context"
	"log/slog"
	"net/http"
	"slices"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/bjaus/apidoc"
	"github.com/bjaus/apidoc/router"
)

func newRouter(store *userStore, logger *slog.Logger) *router.Router {
	docs := apidoc.NewDocs()
	apidoc.DocumentType[User](docs, "A registered account")
	apidoc.DocumentField[User](docs, "created_at", "Creation time", "RFC 3339")
	apidoc.DocumentType[Address](docs, "Postal address")

	r := router.New(
		router.WithVersion(projectVersion),
		router.WithDocs(docs),
		router.WithLogger(logger),
		router.WithValidator(router.NewStructValidator()),
	)

	h := &handlers{store: store}

	v1 := r.Group("/v1", router.WithGroupPrefixes("/api/v1"))
	router.Get(v1, "/health", h.health, router.WithDoc("Health check"))
	router.Get(v1, "/users", h.listUsers, router.WithDoc("List users", "Filter by role with ?role="))
	router.Post(v1, "/users", h.createUser, router.WithStatus(http.StatusCreated), router.WithDoc("Create a user"))
	router.Get(v1, "/users/{id}", h.getUser, router.WithDoc("Fetch a user", "404 when the user does not exist"))
	router.Match(v1, []string{http.MethodPut, http.MethodPatch}, "/users/{id}", h.updateUser, router.WithDoc("Update a user"))
	router.Delete(v1, "/users/{id}", h.deleteUser)

	v2 := r.Group("/v2")
	router.Get(v2, "/users/{view}", h.pageUsers, router.WithDoc("Page through users", "Roles are matrix parameters: /v2/users/list;role=admin,member"))
	router.Raw(v2, http.MethodGet, "/ping", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	}, router.WithDoc("Liveness probe"))

	return r
}

// User is the core domain entity.
type User struct {
	ID        string    `json:"id"`
	Name      string    `json:"name" doc:"Display name"`
	Email     string    `json:"email"`
	Role      Role      `json:"role"`
	Address   *Address  `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is where a user receives mail.
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

// Role is the permission level of a user.
type Role string

// APIDoc implements apidoc.Documenter.
func (Role) APIDoc() apidoc.Doc {
	return apidoc.Doc{Description: "Permission level", Help: []string{"admin", "member"}}
}

// Page is one window of a listing.
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total" doc:"Matching items before paging"`
}

type HealthResp struct {
	Status string    `json:"status"`
	Time   time.Time `json:"time"`
}

type ListUsersReq struct {
	Role   string `query:"role" doc:"Filter by role"`
	Limit  int    `query:"limit" default:"50" doc:"Max results" validate:"gte=0,lte=500"`
	Offset int    `query:"offset" default:"0" doc:"Pagination offset" validate:"gte=0"`
}

type ListUsersResp struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

type UserInput struct {
	Name    string   `json:"name" validate:"required,min=2"`
	Email   string   `json:"email" validate:"required,email"`
	Role    Role     `json:"role" validate:"omitempty,oneof=admin member"`
	Address *Address `json:"address,omitempty"`
}

type UserByIDReq struct {
	ID string `path:"id" doc:"User id"`
}

type UpdateUserReq struct {
	ID      string `path:"id" doc:"User id"`
	IfMatch string `header:"If-Match" doc:"Expected version" help:"Optional|Compared with the user's creation time"`
	Body    UserInput
}

type PageUsersReq struct {
	View  string   `path:"view" doc:"Listing name"`
	Roles []string `matrix:"role" doc:"Roles to include"`
	Limit int      `query:"limit" default:"20" validate:"gte=1,lte=100"`
}

type handlers struct {
	store *userStore
}

func (h *handlers) health(_ context.Context, _ *router.Void) (*HealthResp, error) {
	return &HealthResp{Status: "ok", Time: time.Now()}, nil
}

func (h *handlers) listUsers(_ context.Context, req *ListUsersReq) (*ListUsersResp, error) {
	users := h.store.list(func(u User) bool {
		return req.Role == "" || string(u.Role) == req.Role
	})
	total := len(users)

	users = users[min(req.Offset, len(users)):]
	if req.Limit > 0 && req.Limit < len(users) {
		users = users[:req.Limit]
	}
	return &ListUsersResp{Users: users, Total: total}, nil
}

func (h *handlers) createUser(_ context.Context, req *UserInput) (*User, error) {
	return h.store.create(*req), nil
}

func (h *handlers) getUser(_ context.Context, req *UserByIDReq) (*User, error) {
	u, ok := h.store.get(req.ID)
	if !ok {
		return nil, router.Errorf(http.StatusNotFound, "user %s not found", req.ID)
	}
	return u, nil
}

func (h *handlers) updateUser(_ context.Context, req *UpdateUserReq) (*User, error) {
	current, ok := h.store.get(req.ID)
	if !ok {
		return nil, router.Errorf(http.StatusNotFound, "user %s not found", req.ID)
	}
	if req.IfMatch != "" && req.IfMatch != current.CreatedAt.Format(time.RFC3339Nano) {
		return nil, router.Error(http.StatusPreconditionFailed, "user has changed")
	}
	u, _ := h.store.update(req.ID, req.Body)
	return u, nil
}

func (h *handlers) deleteUser(_ context.Context, req *UserByIDReq) (*router.Void, error) {
	if !h.store.delete(req.ID) {
		return nil, router.Errorf(http.StatusNotFound, "user %s not found", req.ID)
	}
	return nil, nil
}

func (h *handlers) pageUsers(_ context.Context, req *PageUsersReq) (*Page[User], error) {
	if req.View != "list" {
		return nil, router.Errorf(http.StatusNotFound, "unknown view %q", req.View)
	}
	users := h.store.list(func(u User) bool {
		return len(req.Roles) == 0 || slices.Contains(req.Roles, string(u.Role))
	})
	return &Page[User]{Items: users[:min(req.Limit, len(users))], Total: len(users)}, nil
}

type userStore struct {
	mu     sync.RWMutex
	users  map[string]User
	nextID int
}

func newUserStore() *userStore {
	now := time.Now().UTC()
	return &userStore{
		users: map[string]User{
			"1": {ID: "1", Name: "Alice", Email: "alice@example.com", Role: "admin", CreatedAt: now},
			"2": {ID: "2", Name: "Bob", Email: "bob@example.com", Role: "member", CreatedAt: now},
		},
		nextID: 3,
	}
}

// list returns the users accepted by keep, ordered by id.
func (s *userStore) list(keep func(User) bool) []User {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]User, 0, len(s.users))
	for _, u := range s.users {
		if keep(u) {
			out = append(out, u)
		}
	}
	slices.SortFunc(out, func(a, b User) int {
		return strings.Compare(a.ID, b.ID)
	})
	return out
}

func (s *userStore) get(id string) (*User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	u, ok := s.users[id]
	return &u, ok
}

func (s *userStore) create(in UserInput) *User {
	s.mu.Lock()
	defer s.mu.Unlock()

	role := in.Role
	if role == "" {
		role = "member"
	}
	u := User{
		ID:        strconv.Itoa(s.nextID),
		Name:      in.Name,
		Email:     in.Email,
		Role:      role,
		Address:   in.Address,
		CreatedAt: time.Now().UTC(),
	}
	s.nextID++
	s.users[u.ID] = u
	return &u
}

func (s *userStore) update(id string, in UserInput) (*User, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	u, ok := s.users[id]
	if !ok {
		return nil, false
	}
	u.Name = in.Name
	u.Email = in.Email
	if in.Role != "" {
		u.Role = in.Role
	}
	if in.Address != nil {
		u.Address = in.Address
	}
	s.users[id] = u
	return &u, true
}

func (s *userStore) delete(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[id]; !ok {
		return false
	}
	delete(s.users, id)
	return true
}
