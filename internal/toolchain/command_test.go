package toolchain

import (
	"context"
	"reflect"
	"testing"
)

func TestCompileArgs(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.CompileArgs("Samples/ClientServer.pproj")
	want := []string{"pc", "-proj:Samples/ClientServer.pproj"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CompileArgs = %v, want %v", got, want)
	}
}

func TestCheckArgs(t *testing.T) {
	cfg := Config{Compiler: "pc", Checker: "coyote"}
	got := cfg.CheckArgs("/out/ClientServer.dll", "tcSendReceive", 1000)
	want := []string{"coyote", "test", "/out/ClientServer.dll", "-m", "tcSendReceive", "-i", "1000"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("CheckArgs = %v, want %v", got, want)
	}
}

func TestListTestsArgs(t *testing.T) {
	cfg := DefaultConfig()
	got := cfg.ListTestsArgs("/out/ClientServer.dll")
	want := []string{"coyote", "test", "/out/ClientServer.dll"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("ListTestsArgs = %v, want %v", got, want)
	}
}

func TestRunStreamsAndCollects(t *testing.T) {
	var lines []string
	result, err := Run(context.Background(), []string{"sh", "-c", "echo one; echo two"}, func(line string) {
		lines = append(lines, line)
	})
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if !result.Success() {
		t.Errorf("exit code = %d", result.ExitCode)
	}
	if !reflect.DeepEqual(lines, []string{"one", "two"}) {
		t.Errorf("streamed lines = %v", lines)
	}
	if result.Output != "one\ntwo\n" {
		t.Errorf("collected output = %q", result.Output)
	}
}

func TestRunNonZeroExitIsNotAnError(t *testing.T) {
	result, err := Run(context.Background(), []string{"sh", "-c", "echo partial; exit 3"}, nil)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	if result.ExitCode != 3 {
		t.Errorf("exit code = %d, want 3", result.ExitCode)
	}
	if result.Output != "partial\n" {
		t.Errorf("partial output lost: %q", result.Output)
	}
}

func TestRunMissingBinary(t *testing.T) {
	if _, err := Run(context.Background(), []string{"ptool-no-such-binary-xyz"}, nil); err == nil {
		t.Errorf("expected spawn error for missing binary")
	}
}

func TestRunCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, []string{"sh", "-c", "sleep 5"}, nil)
	if err == nil {
		t.Errorf("expected context error from cancelled run")
	}
}
