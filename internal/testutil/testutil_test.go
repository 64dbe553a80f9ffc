package testutil

import "testing"

func TestWriteFileAndParseSource(t *testing.T) {
	dir := t.TempDir()
	path := WriteFile(t, dir, "src/a.ts", "export const a = 1;")

	info := ParseSource(t, path, "export const a = 1;")
	AssertNotNil(t, info)
	AssertEqual(t, 1, len(info.Exports))
	AssertEqual(t, "a", info.Exports[0])
}

func TestAssertHelpers(t *testing.T) {
	AssertNoError(t, nil)
	AssertTrue(t, true, "should be true")
	AssertFalse(t, false, "should be false")
	AssertNotNil(t, 1)
	AssertNil(t, nil)
	AssertEqual(t, 1, 1)
}
