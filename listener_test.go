package blockgen

import "sync"

// fakeListener records every callback invocation for assertions. It is
// safe for concurrent use, since OnPushBlock/OnError may run concurrently
// with OnAddData/OnGenerateBlock.
type fakeListener struct {
	mu sync.Mutex

	addData        []addDataCall
	generated      []string
	pushed         []pushCall
	errors         []errCall
	generateHook   func(blockID string) error // optional injected failure
	generateHookAt int                        // only affects the Nth call (0-indexed); -1 = every call
}

type addDataCall struct {
	data     any
	metadata any
}

type pushCall struct {
	blockID string
	items   []any
}

type errCall struct {
	message string
	cause   error
}

func newFakeListener() *fakeListener {
	return &fakeListener{generateHookAt: -1}
}

func (f *fakeListener) OnAddData(data any, metadata any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.addData = append(f.addData, addDataCall{data: data, metadata: metadata})
}

func (f *fakeListener) OnGenerateBlock(blockID string) {
	f.mu.Lock()
	hook := f.generateHook
	idx := len(f.generated)
	triggerAt := f.generateHookAt
	f.generated = append(f.generated, blockID)
	f.mu.Unlock()

	if hook != nil && (triggerAt == -1 || triggerAt == idx) {
		if err := hook(blockID); err != nil {
			panic(err)
		}
	}
}

func (f *fakeListener) OnPushBlock(blockID string, items []any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.pushed = append(f.pushed, pushCall{blockID: blockID, items: items})
}

func (f *fakeListener) OnError(message string, cause error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors = append(f.errors, errCall{message: message, cause: cause})
}

func (f *fakeListener) snapshotPushed() []pushCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]pushCall, len(f.pushed))
	copy(out, f.pushed)
	return out
}

func (f *fakeListener) snapshotErrors() []errCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]errCall, len(f.errors))
	copy(out, f.errors)
	return out
}

func (f *fakeListener) snapshotGenerated() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, len(f.generated))
	copy(out, f.generated)
	return out
}

func (f *fakeListener) snapshotAddData() []addDataCall {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]addDataCall, len(f.addData))
	copy(out, f.addData)
	return out
}
