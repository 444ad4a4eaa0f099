package toolchain

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/plang/ptool/internal/session"
)

func TestParseCompileOutput(t *testing.T) {
	onDisk := map[string]bool{
		"/tmp/out/ClientServer.dll": true,
		"/tmp/out/TwoPhase.dll":     true,
	}
	exists := func(path string) bool { return onDisk[path] }

	tests := []struct {
		name   string
		output string
		want   []session.Artifact
	}{
		{
			name: "existing artifacts kept in production order",
			output: `Compiling ClientServer...
ClientServer -> /tmp/out/ClientServer.dll
TwoPhase -> /tmp/out/TwoPhase.dll
Build succeeded.`,
			want: []session.Artifact{
				{Model: "ClientServer", Path: "/tmp/out/ClientServer.dll"},
				{Model: "TwoPhase", Path: "/tmp/out/TwoPhase.dll"},
			},
		},
		{
			name: "missing file dropped",
			output: `ClientServer -> /tmp/out/ClientServer.dll
Foo -> /tmp/out/Foo.dll`,
			want: []session.Artifact{
				{Model: "ClientServer", Path: "/tmp/out/ClientServer.dll"},
			},
		},
		{
			name:   "wrong extension dropped",
			output: `ClientServer -> /tmp/out/ClientServer.pdb`,
			want:   nil,
		},
		{
			name: "partial output from failed compile still scrapes",
			output: `ClientServer -> /tmp/out/ClientServer.dll
error PC1001: something broke`,
			want: []session.Artifact{
				{Model: "ClientServer", Path: "/tmp/out/ClientServer.dll"},
			},
		},
		{
			name:   "no artifact lines",
			output: "Build succeeded.\n",
			want:   nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ParseCompileOutput(tt.output, []string{".dll"}, exists)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseCompileOutput = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseTestList(t *testing.T) {
	output := `Coyote 1.7.0
tcSendReceive
tcTwoPhase.Commit
not a test case
tc_with_underscores

`
	want := []string{"tcSendReceive", "tcTwoPhase.Commit", "tc_with_underscores"}

	got := ParseTestList(output)
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ParseTestList = %v, want %v", got, want)
	}
}

func TestListTestCases(t *testing.T) {
	cfg := DefaultConfig()

	artifact := filepath.Join(t.TempDir(), "Demo.dll")
	if err := os.WriteFile(artifact, []byte("binary"), 0644); err != nil {
		t.Fatalf("writing artifact: %v", err)
	}

	t.Run("missing artifact returns empty list", func(t *testing.T) {
		run := func(ctx context.Context, argv []string, onLine LineFunc) (Result, error) {
			t.Fatal("runner must not be called for a missing artifact")
			return Result{}, nil
		}
		if got := ListTestCases(context.Background(), cfg, "/nope/Demo.dll", run); got != nil {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("failed subprocess returns empty list", func(t *testing.T) {
		run := func(ctx context.Context, argv []string, onLine LineFunc) (Result, error) {
			return Result{}, errors.New("spawn failed")
		}
		if got := ListTestCases(context.Background(), cfg, artifact, run); got != nil {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("non-zero exit returns empty list", func(t *testing.T) {
		run := func(ctx context.Context, argv []string, onLine LineFunc) (Result, error) {
			return Result{Output: "tcOne\n", ExitCode: 2}, nil
		}
		if got := ListTestCases(context.Background(), cfg, artifact, run); got != nil {
			t.Errorf("expected empty list, got %v", got)
		}
	})

	t.Run("successful run parses test cases", func(t *testing.T) {
		run := func(ctx context.Context, argv []string, onLine LineFunc) (Result, error) {
			wantArgv := cfg.ListTestsArgs(artifact)
			if !reflect.DeepEqual(argv, wantArgv) {
				t.Errorf("argv = %v, want %v", argv, wantArgv)
			}
			return Result{Output: "tcOne\ntcTwo\n"}, nil
		}
		got := ListTestCases(context.Background(), cfg, artifact, run)
		if !reflect.DeepEqual(got, []string{"tcOne", "tcTwo"}) {
			t.Errorf("ListTestCases = %v", got)
		}
	})
}
