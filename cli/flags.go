package cli

var (
	verbose bool

	// all commands
	configPath  string
	mediaPlayer string

	// for run command
	runSource   string
	runFeedKind string

	// for classify command
	classifyFingers  int
	classifyDX       float64
	classifyDY       float64
	classifyProgress float64

	// for dispatch command
	dispatchDryRun bool

	// for bindings set command
	bindingCustomIndex int
)
