package main

import (
	"bytes"
	"context"
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/guardian/cmdline/config"
	"github.com/guardian/cmdline/flag"
	"github.com/guardian/cmdline/log"
	"github.com/guardian/cmdline/store"
)

type fakeStore struct {
	params map[string]string
}

func (f fakeStore) Get(ctx context.Context, service store.Service, name string) (store.Parameter, error) {
	v, ok := f.params[name]
	if !ok {
		return store.Parameter{}, store.ErrNotFound
	}
	return store.Parameter{Service: service, Name: service.Path(name), Value: v}, nil
}

func (f fakeStore) List(ctx context.Context, service store.Service) ([]store.Parameter, error) {
	var out []store.Parameter
	for _, k := range []string{"n", "mode"} {
		if v, ok := f.params[k]; ok {
			out = append(out, store.Parameter{Service: service, Name: service.Path(k), Value: v})
		}
	}
	return out, nil
}

func run(t *testing.T, files []config.File, args ...string) (string, string, error) {
	t.Helper()
	return runWithInput(t, "", files, args...)
}

func runWithInput(t *testing.T, input string, files []config.File, args ...string) (string, string, error) {
	t.Helper()
	remote := fakeStore{params: map[string]string{"n": "99", "mode": "slow"}}
	factory := func(ctx context.Context, logger log.Logger, backend, profile, region string) (store.Store, error) {
		if backend != "ssm" {
			return nil, errors.New("unexpected backend " + backend)
		}
		return remote, nil
	}

	cmd := newRootCmd(factory, func() []config.File { return files })
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetIn(strings.NewReader(input))
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func exitCode(err error) int {
	var exit *exitError
	if errors.As(err, &exit) {
		return exit.code
	}
	return -1
}

func TestGet(t *testing.T) {
	out, _, err := run(t, nil, "get", "int", "n", "--", "-n", "42", "--verbose")
	require.NoError(t, err)
	require.Equal(t, "42\n", out)

	out, _, err = run(t, nil, "get", "bool", "verbose", "--", "-n", "42", "--verbose")
	require.NoError(t, err)
	require.Equal(t, "true\n", out)
}

func TestGet_Default(t *testing.T) {
	out, stderr, err := run(t, nil, "get", "int", "y", "--default", "7", "--", "-x", "abc")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
	require.Empty(t, stderr)

	out, stderr, err = run(t, nil, "--warn-on-default", "get", "int", "y", "--default", "7", "--", "-x", "abc")
	require.NoError(t, err)
	require.Equal(t, "7\n", out)
	require.Equal(t, "Warning: using default for y 7\n", stderr)

	_, stderr, err = run(t, nil, "--warn-on-default", "get", "int", "y", "--default", "7", "--quiet", "--", "-x", "abc")
	require.NoError(t, err)
	require.Empty(t, stderr)
}

func TestGet_DefaultFromConfigAndStore(t *testing.T) {
	conf := config.File{Path: ".cmdline", ReadCloser: io.NopCloser(strings.NewReader(`{"defaults":{"mode":"fast"}}`))}
	out, _, err := run(t, []config.File{conf}, "get", "string", "mode", "--")
	require.NoError(t, err)
	require.Equal(t, "fast\n", out)

	remote := []string{"--defaults-from", "ssm", "--app", "a", "--stack", "s", "--stage", "TEST"}
	out, _, err = run(t, nil, append(remote, "get", "long", "n", "--")...)
	require.NoError(t, err)
	require.Equal(t, "99\n", out)

	_, _, err = run(t, nil, append(remote, "get", "long", "absent", "--")...)
	require.ErrorIs(t, err, flag.ErrMissing)
	require.Equal(t, InvalidArgs, exitCode(err))

	_, _, err = run(t, nil, "--defaults-from", "ssm", "get", "long", "n", "--")
	require.Error(t, err)
	require.Equal(t, InternalError, exitCode(err))
}

func TestGet_Errors(t *testing.T) {
	_, _, err := run(t, nil, "get", "int", "n", "--", "foo")
	require.ErrorIs(t, err, flag.ErrUsage)
	require.Contains(t, err.Error(), "illegal command line")
	require.Equal(t, InvalidArgs, exitCode(err))

	_, _, err = run(t, nil, "get", "int", "y", "--", "-x", "abc")
	require.EqualError(t, err, "missing command line argument y")
	require.Equal(t, InvalidArgs, exitCode(err))

	_, _, err = run(t, nil, "get", "complex", "n", "--")
	require.Equal(t, InvalidArgs, exitCode(err))
}

func TestChoose(t *testing.T) {
	out, _, err := run(t, nil, "choose", "mode", "--keys", "a,b", "--", "-mode", "b")
	require.NoError(t, err)
	require.Equal(t, "b\n", out)

	_, _, err = run(t, nil, "choose", "mode", "--keys", "a,b", "--", "-mode", "c")
	require.EqualError(t, err, "Not found: -mode c\nValid arguments are: a b")
	require.Equal(t, InvalidArgs, exitCode(err))

	out, _, err = run(t, nil, "choose", "cmd", "--keys", "default,other", "--default-key", "default", "--")
	require.NoError(t, err)
	require.Equal(t, "default\n", out)

	out, _, err = run(t, nil, "choose", "mode", "--keys", "a,b", "--fallback", "none", "--", "-mode", "c")
	require.NoError(t, err)
	require.Equal(t, "none\n", out)
}

func TestDefaultsList(t *testing.T) {
	conf := config.File{Path: ".cmdline", ReadCloser: io.NopCloser(strings.NewReader(`{"defaults":{"z":"1","b":"2"}}`))}
	out, _, err := run(t, []config.File{conf}, "--defaults-from", "ssm", "--app", "a", "--stack", "s", "--stage", "TEST", "defaults", "list")
	require.NoError(t, err)
	require.Equal(t, "-b 2\n-z 1\n-n 99\n-mode slow\n", out)
}

func TestSetLocalConfig(t *testing.T) {
	old := config.DefaultLocalPath
	defer func() { config.DefaultLocalPath = old }()

	tests := []struct {
		desc   string
		input  string
		args   []string
		want   config.Config
		prompt string
	}{
		{
			desc: "flags and --set defaults",
			args: []string{"--warn-on-default", "set-local-config", "--set", "n=42,mode=fast"},
			want: config.Config{WarnOnDefault: true, Defaults: map[string]string{"n": "42", "mode": "fast"}},
		},
		{
			desc:   "asks only for missing service fields",
			input:  "my-stack\nTEST\n",
			args:   []string{"--defaults-from", "ssm", "--app", "my-app", "set-local-config"},
			want:   config.Config{App: "my-app", Stack: "my-stack", Stage: "TEST", DefaultsFrom: "ssm"},
			prompt: "Stack: Stage: ",
		},
	}

	for _, tt := range tests {
		config.DefaultLocalPath = filepath.Join(t.TempDir(), ".cmdline")

		out, _, err := runWithInput(t, tt.input, nil, tt.args...)
		require.NoError(t, err, tt.desc)
		require.Equal(t, tt.prompt, out, tt.desc)

		f, err := os.Open(config.DefaultLocalPath)
		require.NoError(t, err, tt.desc)
		got, err := config.Read(config.Config{}, config.File{Path: config.DefaultLocalPath, ReadCloser: f})
		require.NoError(t, err, tt.desc)
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Fatalf("%s: saved config mismatch (-want +got):\n%s", tt.desc, diff)
		}
	}
}
