package cli

import (
	"bytes"
	"strings"
	"testing"
)

func TestKindsCommandPlain(t *testing.T) {
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetArgs([]string{"kinds", "--plain", "aws.storage"})
	if err := root.Execute(); err != nil {
		t.Fatalf("kinds: %v", err)
	}
	want := "aws.storage.EBS\naws.storage.S3\n"
	if out.String() != want {
		t.Errorf("output = %q, want %q", out.String(), want)
	}
}

func TestPrintKindsGroups(t *testing.T) {
	var out bytes.Buffer
	printKinds(&out, []string{"aws.compute.EC2", "aws.compute.Lambda", "k8s.compute.Pod"})
	text := out.String()
	for _, s := range []string{"aws.compute", "EC2", "Lambda", "k8s.compute", "Pod"} {
		if !strings.Contains(text, s) {
			t.Errorf("output missing %q:\n%s", s, text)
		}
	}
	if strings.Count(text, "aws.compute") != 1 {
		t.Errorf("namespace header should appear once:\n%s", text)
	}
}
