// Remote sources for flag defaults. A service's defaults live under
// /<stage>/<stack>/<app>/<flag name>.
package store

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var ErrNotFound = errors.New("parameter not found")

type Service struct {
	Stack, Stage, App string
}

func (s Service) Prefix() string {
	return fmt.Sprintf("/%s/%s/%s", s.Stage, s.Stack, s.App)
}

func (s Service) Path(name string) string {
	return s.Prefix() + "/" + name
}

func (s Service) Valid() bool {
	return s.App != "" && s.Stack != "" && s.Stage != ""
}

type Parameter struct {
	Service  Service
	Name     string
	Value    string
	IsSecret bool
}

// Key is the flag name the parameter provides a default for: the service
// prefix is dropped and dots and slashes become underscores.
func (c Parameter) Key() string {
	r := strings.NewReplacer(c.Service.Prefix()+"/", "", ".", "_", "/", "_")
	return r.Replace(c.Name)
}

// String renders the parameter as a command-line pair.
func (c Parameter) String() string {
	return fmt.Sprintf("-%s %s", c.Key(), c.Value)
}

type Store interface {
	Get(ctx context.Context, service Service, name string) (Parameter, error)
	List(ctx context.Context, service Service) ([]Parameter, error)
}
