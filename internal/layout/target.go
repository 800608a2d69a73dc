package layout

// Target describes the calling convention the generated code follows.
type Target struct {
	Triple     string // e.g. "x86_64-linux-gnu"
	WordSize   int    // bytes
	StackAlign int    // rsp alignment at every call
	// ArgBase is the distance from the frame pointer to the first
	// argument: the saved frame pointer plus the return address.
	ArgBase int
}

func X86_64LinuxGNU() Target {
	return Target{
		Triple:     "x86_64-linux-gnu",
		WordSize:   8,
		StackAlign: 16,
		ArgBase:    16,
	}
}
