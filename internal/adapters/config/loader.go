// Package config provides the workspace file loader for rulegen.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"go.trai.ch/rulegen/internal/core/domain"
	"go.trai.ch/rulegen/internal/core/ports"
	"go.trai.ch/zerr"
	"gopkg.in/yaml.v3"
)

// Loader implements ports.ConfigLoader using a YAML file.
type Loader struct {
	Logger ports.Logger
}

// NewLoader creates a new Loader with the given logger.
func NewLoader(logger ports.Logger) *Loader {
	return &Loader{Logger: logger}
}

// Load reads the workspace file at path. If path is a directory, the rules.yaml
// inside it is read.
func (l *Loader) Load(path string) (*domain.Workspace, error) {
	configPath := path
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		configPath = filepath.Join(path, domain.RulesFileName)
	}

	var rulesfile Rulesfile
	if err := readAndUnmarshalYAML(configPath, &rulesfile); err != nil {
		return nil, zerr.With(err, "path", configPath)
	}

	ws := &domain.Workspace{
		Root: resolveRoot(configPath, rulesfile.Root),
		Platform: domain.PlatformConfig{
			SearchPathVar: rulesfile.Platform.LibrarySearchPathVar,
		},
	}

	toolchain, err := buildToolchain(rulesfile.Toolchain)
	if err != nil {
		return nil, err
	}
	ws.Toolchain = toolchain

	ws.DefaultTestTimeout, err = domain.ParseTimeout(rulesfile.DefaultTestTimeout)
	if err != nil {
		return nil, zerr.With(err, "field", "default_test_timeout")
	}

	seen := make(map[domain.TargetIdentity]struct{})
	claim := func(id domain.TargetIdentity) error {
		if _, dup := seen[id]; dup {
			return zerr.With(zerr.Wrap(domain.ErrRuleAlreadyExists, "target declared twice"), "target", id.String())
		}
		seen[id] = struct{}{}
		return nil
	}

	for i := range rulesfile.Rules {
		rule, err := buildRule(&rulesfile.Rules[i])
		if err != nil {
			return nil, err
		}
		if err := claim(rule.Target()); err != nil {
			return nil, err
		}
		ws.Rules = append(ws.Rules, rule)
	}

	for i := range rulesfile.Tests {
		dto := &rulesfile.Tests[i]
		decl, err := buildTest(dto)
		if err != nil {
			return nil, err
		}
		if err := claim(decl.Target); err != nil {
			return nil, err
		}
		if len(dto.NativeLibraryWhitelist) > 0 && !decl.Arg.EffectiveUseNativeLibraries() {
			l.Logger.Warn(fmt.Sprintf(
				"'native_library_whitelist' of %s has no effect without 'use_native_libraries'", decl.Target))
		}
		ws.Tests = append(ws.Tests, decl)
	}

	return ws, nil
}

func buildToolchain(dto ToolchainDTO) (domain.ToolchainConfig, error) {
	if dto.Library == "" {
		return domain.ToolchainConfig{}, domain.ErrMissingToolchainLibrary
	}

	library, err := domain.ParseTarget(dto.Library)
	if err != nil {
		return domain.ToolchainConfig{}, zerr.With(err, "field", "toolchain.library")
	}

	cfg := domain.ToolchainConfig{
		Library: library,
		Flags:   slices.Clone(dto.CompilerFlags),
	}

	if dto.Compiler != "" {
		cfg.Compiler, err = domain.ParseTarget(dto.Compiler)
		if err != nil {
			return domain.ToolchainConfig{}, zerr.With(err, "field", "toolchain.compiler")
		}
		cfg.HasCompiler = true
	}

	return cfg, nil
}

func buildRule(dto *RuleDTO) (*domain.BuildRule, error) {
	target, err := domain.ParseTarget(dto.Name)
	if err != nil {
		return nil, err
	}

	kind, err := domain.ParseRuleKind(dto.Kind)
	if err != nil {
		return nil, zerr.With(err, "target", dto.Name)
	}

	deps, err := parseTargetField(dto.Name, "deps", dto.Deps)
	if err != nil {
		return nil, err
	}
	exported, err := parseTargetField(dto.Name, "exported_deps", dto.ExportedDeps)
	if err != nil {
		return nil, err
	}

	var payload domain.RulePayload
	switch kind {
	case domain.RuleKindNativeLibrary:
		linkDeps, err := parseTargetField(dto.Name, "link_deps", dto.LinkDeps)
		if err != nil {
			return nil, err
		}
		payload = domain.NativeLibraryPayload{
			LibraryName: dto.LibraryName,
			SearchPath:  dto.SearchPath,
			LinkDeps:    linkDeps,
		}
	default:
		payload = domain.PrebuiltPayload{BinaryJar: dto.BinaryJar}
	}

	return domain.NewBuildRule(target, domain.NewDependencyClosure(deps...), exported, payload), nil
}

func buildTest(dto *TestDTO) (domain.TestDeclaration, error) {
	target, err := domain.ParseTarget(dto.Name)
	if err != nil {
		return domain.TestDeclaration{}, err
	}
	if target.IsFlavored() {
		err := zerr.Wrap(domain.ErrInvalidTarget, "test targets must not carry flavors")
		return domain.TestDeclaration{}, zerr.With(err, "target", dto.Name)
	}

	library, err := buildLibraryArg(dto)
	if err != nil {
		return domain.TestDeclaration{}, err
	}

	arg := domain.TestArg{
		Library:            library,
		Contacts:           canonicalizeStrings(dto.Contacts),
		Labels:             canonicalizeStrings(dto.Labels),
		VMArgs:             slices.Clone(dto.VMArgs),
		RunTestSeparately:  dto.RunTestSeparately,
		UseNativeLibraries: dto.UseNativeLibraries,
		Env:                dto.Env,
	}

	if err := parseTestOptions(dto, &arg); err != nil {
		return domain.TestDeclaration{}, zerr.With(err, "target", dto.Name)
	}

	arg.NativeLibraryWhitelist, err = parseTargetField(dto.Name, "native_library_whitelist", dto.NativeLibraryWhitelist)
	if err != nil {
		return domain.TestDeclaration{}, err
	}

	return domain.TestDeclaration{Target: target, Arg: arg}, nil
}

func buildLibraryArg(dto *TestDTO) (domain.LibraryArg, error) {
	lib := domain.LibraryArg{
		Srcs:           canonicalizeStrings(dto.Srcs),
		Resources:      canonicalizeStrings(dto.Resources),
		ExtraArguments: slices.Clone(dto.ExtraArguments),
		ResourcesRoot:  dto.ResourcesRoot,
		ManifestFile:   dto.ManifestFile,
		MavenCoords:    dto.MavenCoords,
	}

	var err error
	if lib.Deps, err = parseTargetField(dto.Name, "deps", dto.Deps); err != nil {
		return domain.LibraryArg{}, err
	}
	if lib.ProvidedDeps, err = parseTargetField(dto.Name, "provided_deps", dto.ProvidedDeps); err != nil {
		return domain.LibraryArg{}, err
	}
	if lib.ExportedDeps, err = parseTargetField(dto.Name, "exported_deps", dto.ExportedDeps); err != nil {
		return domain.LibraryArg{}, err
	}
	return lib, nil
}

// parseTestOptions converts the enum and duration fields of a test declaration.
// Empty fields stay unset so the expander applies its defaults.
func parseTestOptions(dto *TestDTO, arg *domain.TestArg) error {
	if dto.TestType != "" {
		tt, err := domain.ParseTestType(dto.TestType)
		if err != nil {
			return err
		}
		arg.TestType = &tt
	}

	if dto.ForkMode != "" {
		fm, err := domain.ParseForkMode(dto.ForkMode)
		if err != nil {
			return err
		}
		arg.ForkMode = &fm
	}

	if dto.StdOutLogLevel != "" {
		lvl, err := domain.ParseLogLevel(dto.StdOutLogLevel)
		if err != nil {
			return zerr.With(err, "field", "std_out_log_level")
		}
		arg.StdOutLogLevel = &lvl
	}

	if dto.StdErrLogLevel != "" {
		lvl, err := domain.ParseLogLevel(dto.StdErrLogLevel)
		if err != nil {
			return zerr.With(err, "field", "std_err_log_level")
		}
		arg.StdErrLogLevel = &lvl
	}

	timeout, err := domain.ParseTimeout(dto.TestRuleTimeout)
	if err != nil {
		return zerr.With(err, "field", "test_rule_timeout")
	}
	arg.TestRuleTimeout = timeout

	return nil
}

func parseTargetField(owner, field string, strs []string) ([]domain.TargetIdentity, error) {
	if len(strs) == 0 {
		return nil, nil
	}
	ids, err := domain.ParseTargets(strs)
	if err != nil {
		return nil, zerr.With(zerr.With(err, "target", owner), "field", field)
	}
	return ids, nil
}

func canonicalizeStrings(strs []string) []string {
	if len(strs) == 0 {
		return nil
	}

	sorted := slices.Clone(strs)
	slices.Sort(sorted)
	return slices.Compact(sorted)
}

func resolveRoot(configPath, configuredRoot string) string {
	configDir := filepath.Dir(configPath)
	if configuredRoot == "" {
		return filepath.Clean(configDir)
	}
	if filepath.IsAbs(configuredRoot) {
		return filepath.Clean(configuredRoot)
	}
	return filepath.Clean(filepath.Join(configDir, configuredRoot))
}

// readAndUnmarshalYAML reads a YAML file and unmarshals it into the target struct.
func readAndUnmarshalYAML[T any](configPath string, target *T) error {
	// #nosec G304 -- configPath is provided by the user
	configFile, err := os.ReadFile(configPath)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigReadFailed, err)
	}

	if parseErr := yaml.Unmarshal(configFile, target); parseErr != nil {
		return fmt.Errorf("%w: %w", domain.ErrConfigParseFailed, parseErr)
	}
	return nil
}
