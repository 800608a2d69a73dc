package buildpipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"vecl/internal/project"
)

// CommandRunner runs one external tool.
type CommandRunner func(ctx context.Context, name string, args ...string) error

// BuildRequest configures output generation for a compilation.
type BuildRequest struct {
	CompileRequest
	OutputPath    string
	Assembler     string
	Linker        string
	KeepTmp       bool
	PrintCommands io.Writer // nil: commands are not echoed
	Runner        CommandRunner
}

// BuildResult captures build artefacts and timings.
type BuildResult struct {
	OutputPath string
	TmpDir     string
	Compile    CompileResult
	Timings    Timings
}

// Build compiles the target and produces a linked executable.
func Build(ctx context.Context, req *BuildRequest) (BuildResult, error) {
	var result BuildResult
	if req == nil {
		return result, errors.New("missing build request")
	}
	reqCopy := *req
	req = &reqCopy
	if req.OutputPath == "" {
		req.OutputPath = strings.TrimSuffix(filepath.Base(req.TargetPath), project.SourceExt)
	}
	if req.Assembler == "" {
		req.Assembler = project.DefaultAssembler
	}
	if req.Linker == "" {
		req.Linker = project.DefaultLinker
	}
	if req.Runner == nil {
		req.Runner = execRunner(req.PrintCommands)
	}

	compileRes, err := Compile(ctx, &req.CompileRequest)
	result.Compile = compileRes
	result.Timings = compileRes.Timings
	if err != nil {
		return result, err
	}

	result.OutputPath = req.OutputPath
	if dir := filepath.Dir(req.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return result, fmt.Errorf("failed to create output dir: %w", err)
		}
	}
	tmpDir, err := os.MkdirTemp("", "vecl-build-*")
	if err != nil {
		return result, fmt.Errorf("failed to create tmp dir: %w", err)
	}
	result.TmpDir = tmpDir

	err = assembleAndLink(ctx, req, tmpDir, compileRes.Asm, &result.Timings)
	if !req.KeepTmp {
		if rmErr := os.RemoveAll(tmpDir); rmErr != nil && err == nil {
			err = fmt.Errorf("failed to clean tmp dir: %w", rmErr)
		}
		result.TmpDir = ""
	}
	return result, err
}

func assembleAndLink(ctx context.Context, req *BuildRequest, tmpDir string, asm []byte, timings *Timings) error {
	file := req.TargetPath
	asmPath := filepath.Join(tmpDir, "out.asm")
	objPath := filepath.Join(tmpDir, "out.o")
	if err := os.WriteFile(asmPath, asm, 0o600); err != nil {
		return fmt.Errorf("failed to write assembly: %w", err)
	}

	start := time.Now()
	emitStage(req.Progress, file, StageAssemble, StatusWorking, nil, 0)
	if err := req.Runner(ctx, req.Assembler, "-f", "elf64", "-o", objPath, asmPath); err != nil {
		err = fmt.Errorf("assembler failed: %w", err)
		emitStage(req.Progress, file, StageAssemble, StatusError, err, 0)
		return err
	}
	timings.Set(StageAssemble, time.Since(start))
	emitStage(req.Progress, file, StageAssemble, StatusDone, nil, timings.Duration(StageAssemble))

	start = time.Now()
	emitStage(req.Progress, file, StageLink, StatusWorking, nil, 0)
	if err := req.Runner(ctx, req.Linker, "-no-pie", objPath, "-o", req.OutputPath); err != nil {
		err = fmt.Errorf("linker failed: %w", err)
		emitStage(req.Progress, file, StageLink, StatusError, err, 0)
		return err
	}
	timings.Set(StageLink, time.Since(start))
	emitStage(req.Progress, file, StageLink, StatusDone, nil, timings.Duration(StageLink))
	return nil
}

func execRunner(echo io.Writer) CommandRunner {
	return func(ctx context.Context, name string, args ...string) error {
		if echo != nil {
			if _, err := fmt.Fprintf(echo, "%s %s\n", name, strings.Join(args, " ")); err != nil {
				return fmt.Errorf("failed to print command: %w", err)
			}
		}
		if _, err := exec.LookPath(name); err != nil {
			return fmt.Errorf("%s not found in PATH: %w", name, err)
		}
		// #nosec G204 -- tool names come from the manifest or flags
		cmd := exec.CommandContext(ctx, name, args...)
		var stderr strings.Builder
		cmd.Stderr = &stderr
		if err := cmd.Run(); err != nil {
			msg := strings.TrimSpace(stderr.String())
			if msg == "" {
				return err
			}
			return fmt.Errorf("%s: %s", name, msg)
		}
		return nil
	}
}
