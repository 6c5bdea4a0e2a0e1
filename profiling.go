package main

import (
	"fmt"
	"strings"

	"github.com/pkg/profile"
)

// ProfileCategory is what --profile measures while the scripts run.
type ProfileCategory string

const (
	ProfileCPU  ProfileCategory = "cpu"
	ProfileHeap ProfileCategory = "heap"
)

func parseProfileCategory(s string) (ProfileCategory, error) {
	switch c := ProfileCategory(strings.ToLower(s)); c {
	case ProfileCPU, ProfileHeap:
		return c, nil
	}
	return "", fmt.Errorf("unknown profile %q, expected %s or %s", s, ProfileCPU, ProfileHeap)
}

var profiler interface {
	Stop()
}

// startProfiling writes the profile into dir when stopProfiling is called. The heap
// profile samples every allocation so short scripts still show up in it.
func startProfiling(what ProfileCategory, dir string) {
	opts := []func(*profile.Profile){profile.CPUProfile}
	if what == ProfileHeap {
		opts = []func(*profile.Profile){profile.MemProfileHeap, profile.MemProfileRate(1)}
	}
	opts = append(opts, profile.ProfilePath(dir))
	profiler = profile.Start(opts...)
	log(LogCatgApp, "Started %s profiling into %s\n", what, dir)
}

func stopProfiling() {
	if profiler == nil {
		return
	}
	profiler.Stop()
	profiler = nil
	log(LogCatgApp, "Stopped profiling\n")
}
