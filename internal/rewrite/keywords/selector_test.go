package keywords

import (
	"reflect"
	"testing"
)

func TestSelect_DropsKeywordsAlreadyPresent(t *testing.T) {
	// "Kubernetes" is capitalized in the bullet, "PostgreSQL" camel-ish;
	// both should be filtered out case-insensitively.
	text := "Migrated services to Kubernetes backed by PostgreSQL"
	all := []string{"kubernetes", "Terraform", "postgresql", "Go"}

	got := Select(all, text, 3)
	want := []string{"Go", "Terraform"} // sorted by length ascending

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}

func TestSelect_SortsByLengthAscending(t *testing.T) {
	all := []string{"microservices", "Go", "Docker"}
	got := Select(all, "shipped the release", 3)
	want := []string{"Go", "Docker", "microservices"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}

func TestSelect_FallsBackWhenAllPresent(t *testing.T) {
	text := "Deployed Docker and Terraform stacks"
	all := []string{"Docker", "Terraform"}

	// Both already in bullet: head of the original list is reused.
	got := Select(all, text, 1)
	want := []string{"Docker"}

	if !reflect.DeepEqual(got, want) {
		t.Errorf("Select = %v, want %v", got, want)
	}
}

func TestSelect_CapsAtMaxCount(t *testing.T) {
	all := []string{"aa", "bbb", "cccc", "ddddd", "eeeeee"}
	got := Select(all, "plain lowercase bullet", 3)
	if len(got) != 3 {
		t.Fatalf("expected 3 keywords, got %d (%v)", len(got), got)
	}
}

func TestSelect_Empty(t *testing.T) {
	if got := Select(nil, "anything", 3); got != nil {
		t.Errorf("Select(nil) = %v, want nil", got)
	}
	if got := Select([]string{"x"}, "anything", 0); got != nil {
		t.Errorf("Select with maxCount 0 = %v, want nil", got)
	}
}

func TestNormalize(t *testing.T) {
	raw := []string{" Go ", "docker", "", "Docker", "gRPC", "go"}
	want := []string{"Go", "docker", "gRPC"}

	if got := Normalize(raw); !reflect.DeepEqual(got, want) {
		t.Errorf("Normalize = %v, want %v", got, want)
	}
}
