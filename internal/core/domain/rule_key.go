package domain

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
)

// RuleKey computes a deterministic fingerprint of a rule.
// It covers the kind, the identity, the dependency closure, the exported deps and the payload.
// Identities are hashed by their Key, so flavor namespaces take part.
// Two rules with the same key are interchangeable.
func RuleKey(r *BuildRule) string {
	hasher := xxhash.New()

	writeField(hasher, string(r.Kind()))
	writeField(hasher, r.Target().Key())
	writeIdentities(hasher, r.Deps().Targets())
	writeIdentities(hasher, r.exportedDeps)
	hashPayload(hasher, r.Payload())

	return fmt.Sprintf("%016x", hasher.Sum64())
}

func hashPayload(hasher *xxhash.Digest, payload RulePayload) {
	switch p := payload.(type) {
	case LibraryPayload:
		writeStrings(hasher, p.Sources)
		writeStrings(hasher, p.Resources)
		writeStrings(hasher, p.CompilerFlags)
		writeField(hasher, p.Compiler.Key())
		writeField(hasher, p.AbiJar.Target.Key())
		writeField(hasher, p.ResourcesRoot)
		writeField(hasher, p.ManifestFile)
		writeField(hasher, p.MavenCoords)
	case ABIPayload:
		writeField(hasher, p.Input.Target.Key())
	case TestPayload:
		writeField(hasher, p.Library.Target.Key())
		writeField(hasher, string(p.TestType))
		writeStrings(hasher, p.Labels)
		writeStrings(hasher, p.Contacts)
		writeStrings(hasher, p.VMArgs)
		writeField(hasher, string(p.ForkMode))
		writeField(hasher, p.Timeout.String())
		writeLogLevel(hasher, p.StdOutLogLevel)
		writeLogLevel(hasher, p.StdErrLogLevel)
		hashEnvironment(hasher, p.Env)
		writeField(hasher, strconv.FormatBool(p.RunSeparately))
	case PrebuiltPayload:
		writeField(hasher, p.BinaryJar)
	case NativeLibraryPayload:
		writeField(hasher, p.LibraryName)
		writeField(hasher, p.SearchPath)
		writeIdentities(hasher, p.LinkDeps)
	}
}

// hashEnvironment hashes the environment variables in sorted key order.
func hashEnvironment(hasher *xxhash.Digest, env map[string]string) {
	for _, k := range SortedEnvKeys(env) {
		_, _ = hasher.WriteString(k)
		_, _ = hasher.Write([]byte{'='})
		_, _ = hasher.WriteString(env[k])
		_, _ = hasher.Write([]byte{0})
	}
	_, _ = hasher.Write([]byte{0})
}

func writeLogLevel(hasher *xxhash.Digest, l *LogLevel) {
	if l == nil {
		writeField(hasher, "")
		return
	}
	writeField(hasher, l.String())
}

func writeIdentities(hasher *xxhash.Digest, ids []TargetIdentity) {
	for _, id := range ids {
		writeField(hasher, id.Key())
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func writeStrings(hasher *xxhash.Digest, strs []string) {
	for _, s := range strs {
		writeField(hasher, s)
	}
	_, _ = hasher.Write([]byte{0}) // Section separator
}

func writeField(hasher *xxhash.Digest, s string) {
	_, _ = hasher.WriteString(s)
	_, _ = hasher.Write([]byte{0})
}
