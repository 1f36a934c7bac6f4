package branding

import "testing"

func TestEmbeddedValues(t *testing.T) {
	if got := CLIName(); got != "initkit" {
		t.Errorf("CLIName() = %q, want %q", got, "initkit")
	}
	if got := ConfigFile(); got != ".initkit.yaml" {
		t.Errorf("ConfigFile() = %q, want %q", got, ".initkit.yaml")
	}
}

func TestEnvVar(t *testing.T) {
	if got := EnvVar("log_level"); got != "INITKIT_LOG_LEVEL" {
		t.Errorf("EnvVar(log_level) = %q, want %q", got, "INITKIT_LOG_LEVEL")
	}
}
