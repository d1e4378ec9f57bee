package apidoc_test

import (
	"io"
	"log/slog"
	"net/http"

	"github.com/bjaus/apidoc"
)

type AddressDto struct {
	Street string `json:"street"`
	City   string `json:"city"`
}

type UserDto struct {
	Name    string     `json:"name"`
	Address AddressDto `json:"address"`
}

type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

type Node struct {
	Name     string  `json:"name"`
	Children []Node  `json:"children"`
	Parent   *Node   `json:"parent"`
	Tags     TagList `json:"tags"`
}

type TagList []string

type Audit struct {
	CreatedBy string `json:"created_by" doc:"Who created the record"`
}

type Order struct {
	Audit
	ID        int64                 `json:"id" doc:"Order number" help:"Assigned by the store|Never reused"`
	Shipping  *AddressDto           `json:"shipping"`
	Lines     map[string]OrderLine  `json:"lines"`
	internal  string                //nolint:unused // checks unexported fields are skipped
	Ignored   string                `json:"-"`
	Callbacks map[string]func() int `json:"callbacks"`
}

type OrderLine struct {
	SKU string `json:"sku"`
	Qty int    `json:"qty"`
}

type Status string

func (Status) APIDoc() apidoc.Doc {
	return apidoc.Doc{Description: "Lifecycle state", Help: []string{"active", "disabled"}}
}

type rawRequest struct {
	Request *http.Request
}

func (r rawRequest) HTTPRequest() *http.Request { return r.Request }

var provider = apidoc.NewReflectProvider(nil)

func typeOf[T any]() apidoc.Type {
	return apidoc.TypeFor[T](provider)
}

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func build(reg apidoc.Registry, versions ...string) (apidoc.APIVersions, error) {
	in, err := apidoc.New("1.0.0", reg, versions, apidoc.WithLogger(quietLogger()))
	if err != nil {
		return apidoc.APIVersions{}, err
	}
	return in.KnownAPI(), nil
}

type Tree []Tree

type Nested map[string]Nested

type Chain *Chain

type Forest struct {
	Trees Tree   `json:"trees"`
	Index Nested `json:"index"`
	Link  Chain  `json:"link"`
}

type Users []UserDto

type Team struct {
	Lead    UserDto `json:"lead"`
	Members Users   `json:"members"`
}
