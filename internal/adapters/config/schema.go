package config

// Rulesfile represents the structure of the rules.yaml workspace file.
type Rulesfile struct {
	Version            string       `yaml:"version"`
	Root               string       `yaml:"root"`
	Toolchain          ToolchainDTO `yaml:"toolchain"`
	Platform           PlatformDTO  `yaml:"platform"`
	DefaultTestTimeout string       `yaml:"default_test_timeout"`
	Rules              []RuleDTO    `yaml:"rules"`
	Tests              []TestDTO    `yaml:"tests"`
}

// ToolchainDTO names the language toolchain targets.
type ToolchainDTO struct {
	Library       string   `yaml:"library"`
	Compiler      string   `yaml:"compiler"`
	CompilerFlags []string `yaml:"compiler_flags"`
}

// PlatformDTO describes the host platform.
type PlatformDTO struct {
	LibrarySearchPathVar string `yaml:"library_search_path_var"`
}

// RuleDTO represents a rule already present in the build graph.
type RuleDTO struct {
	Name         string   `yaml:"name"`
	Kind         string   `yaml:"kind"`
	Deps         []string `yaml:"deps"`
	ExportedDeps []string `yaml:"exported_deps"`
	BinaryJar    string   `yaml:"binary_jar"`
	LibraryName  string   `yaml:"library_name"`
	SearchPath   string   `yaml:"search_path"`
	LinkDeps     []string `yaml:"link_deps"`
}

// TestDTO represents a test target declaration.
type TestDTO struct {
	Name           string   `yaml:"name"`
	Srcs           []string `yaml:"srcs"`
	Resources      []string `yaml:"resources"`
	Deps           []string `yaml:"deps"`
	ProvidedDeps   []string `yaml:"provided_deps"`
	ExportedDeps   []string `yaml:"exported_deps"`
	ExtraArguments []string `yaml:"extra_arguments"`
	ResourcesRoot  string   `yaml:"resources_root"`
	ManifestFile   string   `yaml:"manifest_file"`
	MavenCoords    string   `yaml:"maven_coords"`

	Contacts               []string          `yaml:"contacts"`
	Labels                 []string          `yaml:"labels"`
	VMArgs                 []string          `yaml:"vm_args"`
	TestType               string            `yaml:"test_type"`
	RunTestSeparately      *bool             `yaml:"run_test_separately"`
	ForkMode               string            `yaml:"fork_mode"`
	StdOutLogLevel         string            `yaml:"std_out_log_level"`
	StdErrLogLevel         string            `yaml:"std_err_log_level"`
	UseNativeLibraries     *bool             `yaml:"use_native_libraries"`
	NativeLibraryWhitelist []string          `yaml:"native_library_whitelist"`
	TestRuleTimeout        string            `yaml:"test_rule_timeout"`
	Env                    map[string]string `yaml:"env"`
}
