package pipeline

import (
	"bytes"
	"context"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/disintegration/imaging"
	"github.com/h2non/bimg"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"

	"github.com/imgtools/imgslim/internal/config"
	"github.com/imgtools/imgslim/internal/logging"
)

// --- Discover tests ---

func TestDiscover_FiltersExtensions(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "photo.jpg")
	touch(t, dir, "logo.png")
	touch(t, dir, "anim.gif")
	touch(t, dir, "banner.webp")
	touch(t, dir, "notes.txt")
	touch(t, dir, "movie.mp4")
	touch(t, dir, "photo.jpg.bak")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"anim.gif", "banner.webp", "logo.png", "photo.jpg"}
	got := basenames(files)
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestDiscover_AllImageExtensions(t *testing.T) {
	dir := t.TempDir()
	exts := []string{".jpg", ".jpeg", ".png", ".webp", ".gif"}
	for _, ext := range exts {
		touch(t, dir, "file"+ext)
	}
	touch(t, dir, "file.bmp")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != len(exts) {
		t.Errorf("got %d files, want %d", len(files), len(exts))
	}
}

func TestDiscover_SkipsDirectoriesNamedLikeImages(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "real.png")
	if err := os.MkdirAll(filepath.Join(dir, "fake.png"), 0o755); err != nil {
		t.Fatal(err)
	}
	touch(t, filepath.Join(dir, "fake.png"), "nested.jpg")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	want := []string{"nested.jpg", "real.png"}
	got := basenames(files)
	if !sliceEqual(got, want) {
		t.Errorf("got %v, want %v (the directory itself must not be listed)", got, want)
	}
}

func TestDiscover_RecursiveAndSorted(t *testing.T) {
	dir := t.TempDir()
	os.MkdirAll(filepath.Join(dir, "sub", "deep"), 0o755)
	touch(t, filepath.Join(dir, "sub", "deep"), "c.png")
	touch(t, filepath.Join(dir, "sub"), "b.jpg")
	touch(t, dir, "a.gif")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}

	if len(files) != 3 {
		t.Fatalf("got %d files, want 3", len(files))
	}
	for i := 1; i < len(files); i++ {
		if files[i] < files[i-1] {
			t.Errorf("not sorted: %q before %q", files[i-1], files[i])
		}
	}
}

func TestDiscover_EmptyDir(t *testing.T) {
	dir := t.TempDir()
	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 0 {
		t.Errorf("got %d files, want 0", len(files))
	}
}

func TestDiscover_CaseInsensitiveExtension(t *testing.T) {
	dir := t.TempDir()
	touch(t, dir, "PHOTO.JPG")
	touch(t, dir, "Logo.Png")

	files, err := Discover(dir)
	if err != nil {
		t.Fatalf("Discover: %v", err)
	}
	if len(files) != 2 {
		t.Errorf("got %d files, want 2 (case-insensitive ext matching)", len(files))
	}
}

// --- RunSummary tests ---

func TestRunSummary_AddAndSaved(t *testing.T) {
	var s RunSummary
	s.Add(FileResult{Src: "a", Status: StatusOptimized, OrigSize: 1000, NewSize: 600})
	s.Add(FileResult{Src: "b", Status: "error: boom", OrigSize: 500})

	if len(s.Results) != 2 {
		t.Fatalf("Results: got %d, want 2", len(s.Results))
	}
	if s.TotalOrigBytes != 1500 {
		t.Errorf("TotalOrigBytes: got %d, want 1500", s.TotalOrigBytes)
	}
	if s.TotalNewBytes != 600 {
		t.Errorf("TotalNewBytes: got %d, want 600", s.TotalNewBytes)
	}
	if got := s.Saved(); got != 900 {
		t.Errorf("Saved: got %d, want 900", got)
	}
}

func TestFileResult_IsError(t *testing.T) {
	if (FileResult{Status: StatusOptimized}).IsError() {
		t.Error("optimized should not be an error")
	}
	if !(FileResult{Status: "error: no loader"}).IsError() {
		t.Error("error status not detected")
	}
}

// --- OptimizeFile tests (these exercise the real codecs) ---

func TestOptimizeFile_PNG(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "a.png")
	dst := filepath.Join(dir, "out", "a.png")
	writeImage(t, src, imaging.PNG)

	res := OptimizeFile(src, dst, 85)
	if res.Status != StatusOptimized {
		t.Fatalf("status = %q, want optimized", res.Status)
	}
	if res.OrigSize <= 0 || res.NewSize <= 0 {
		t.Errorf("sizes not recorded: orig=%d new=%d", res.OrigSize, res.NewSize)
	}
	if fi, err := os.Stat(dst); err != nil || fi.Size() != res.NewSize {
		t.Errorf("destination size mismatch: %v", err)
	}
}

func TestOptimizeFile_WEBP(t *testing.T) {
	if !bimg.IsTypeSupportedSave(bimg.WEBP) {
		t.Skip("libvips build cannot save WEBP")
	}
	dir := t.TempDir()
	src := filepath.Join(dir, "in", "c.webp")
	dst := filepath.Join(dir, "out", "c.webp")
	writeWebpImage(t, src)

	res := OptimizeFile(src, dst, 80)
	if res.Status != StatusOptimized {
		t.Fatalf("status = %q, want optimized", res.Status)
	}
	if res.OrigSize <= 0 || res.NewSize <= 0 {
		t.Errorf("sizes not recorded: orig=%d new=%d", res.OrigSize, res.NewSize)
	}

	out, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	decoded, err := webp.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatalf("output does not decode as webp: %v", err)
	}
	if b := decoded.Bounds(); b.Dx() != 48 || b.Dy() != 48 {
		t.Errorf("output size = %dx%d, want 48x48", b.Dx(), b.Dy())
	}
}

func TestOptimizeFile_MismatchedExtensionIsCopied(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "scan.png") // TIFF bytes behind a .png name
	dst := filepath.Join(dir, "out", "scan.png")

	var buf bytes.Buffer
	if err := tiff.Encode(&buf, imaging.New(12, 12, color.NRGBA{R: 80, A: 255}), nil); err != nil {
		t.Fatalf("encode tiff: %v", err)
	}
	if err := os.WriteFile(src, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}

	res := OptimizeFile(src, dst, 85)
	if res.Status != StatusCopied {
		t.Fatalf("status = %q, want copied", res.Status)
	}
	if res.NewSize != res.OrigSize {
		t.Errorf("copy changed size: orig=%d new=%d", res.OrigSize, res.NewSize)
	}

	// Re-running on the copied output must copy again, byte for byte.
	again := OptimizeFile(dst, filepath.Join(dir, "out2", "scan.png"), 85)
	if again.Status != StatusCopied {
		t.Errorf("second pass status = %q, want copied", again.Status)
	}
	if again.NewSize != res.NewSize {
		t.Errorf("second pass size changed: %d -> %d", res.NewSize, again.NewSize)
	}
}

func TestOptimizeFile_GarbageIsError(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "broken.jpg")
	dst := filepath.Join(dir, "out", "broken.jpg")
	if err := os.WriteFile(src, []byte("not an image at all"), 0o644); err != nil {
		t.Fatal(err)
	}

	res := OptimizeFile(src, dst, 85)
	if !res.IsError() {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if res.OrigSize <= 0 {
		t.Error("OrigSize should be captured even for decode failures")
	}
	if res.NewSize != 0 {
		t.Errorf("NewSize = %d, want 0 (nothing written)", res.NewSize)
	}
	if _, err := os.Stat(dst); !os.IsNotExist(err) {
		t.Error("no destination file should exist after a decode failure")
	}
}

func TestOptimizeFile_MissingSourceIsError(t *testing.T) {
	dir := t.TempDir()
	res := OptimizeFile(filepath.Join(dir, "nope.png"), filepath.Join(dir, "out.png"), 85)
	if !res.IsError() {
		t.Fatalf("status = %q, want error", res.Status)
	}
	if res.OrigSize != 0 {
		t.Errorf("OrigSize = %d, want 0 for an unreadable source", res.OrigSize)
	}
}

// --- Batch run tests ---

func TestRun_MirrorsTree(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "out")
	writeImage(t, filepath.Join(srcDir, "a.png"), imaging.PNG)
	writeImage(t, filepath.Join(srcDir, "sub", "b.jpg"), imaging.JPEG)

	cfg := testConfig(srcDir)
	cfg.DestDir = destDir
	sum := runPipeline(t, &cfg)

	if len(sum.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(sum.Results))
	}
	// Traversal order is lexicographic, so a.png comes first.
	if filepath.Base(sum.Results[0].Src) != "a.png" {
		t.Errorf("first result = %s, want a.png", sum.Results[0].Src)
	}
	for _, r := range sum.Results {
		if r.Status != StatusOptimized {
			t.Errorf("%s: status = %q, want optimized", r.Src, r.Status)
		}
	}
	for _, rel := range []string{"a.png", filepath.Join("sub", "b.jpg")} {
		if _, err := os.Stat(filepath.Join(destDir, rel)); err != nil {
			t.Errorf("missing output %s: %v", rel, err)
		}
	}

	var orig, newer int64
	for _, r := range sum.Results {
		orig += r.OrigSize
		newer += r.NewSize
	}
	if sum.TotalOrigBytes != orig || sum.TotalNewBytes != newer {
		t.Errorf("totals do not match the per-file sums")
	}
}

func TestRun_InPlaceOverwrites(t *testing.T) {
	srcDir := t.TempDir()
	path := filepath.Join(srcDir, "a.png")
	writeImage(t, path, imaging.PNG)

	cfg := testConfig(srcDir)
	cfg.InPlace = true
	sum := runPipeline(t, &cfg)

	if len(sum.Results) != 1 || sum.Results[0].Status != StatusOptimized {
		t.Fatalf("unexpected results: %+v", sum.Results)
	}
	if sum.Results[0].Dest != path {
		t.Errorf("in-place dest = %s, want %s", sum.Results[0].Dest, path)
	}
	after, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	if after.Size() != sum.Results[0].NewSize {
		t.Errorf("file size %d does not match recorded NewSize %d", after.Size(), sum.Results[0].NewSize)
	}
}

func TestRun_DryRunLeavesDestUntouched(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "out")
	writeImage(t, filepath.Join(srcDir, "a.png"), imaging.PNG)

	wet := testConfig(srcDir)
	wet.DestDir = destDir
	wetSum := runPipeline(t, &wet)

	dry := testConfig(srcDir)
	dry.DestDir = filepath.Join(t.TempDir(), "dry-out")
	dry.DryRun = true
	drySum := runPipeline(t, &dry)

	if _, err := os.Stat(dry.DestDir); !os.IsNotExist(err) {
		t.Error("dry run must not create the destination tree")
	}
	if len(drySum.Results) != 1 {
		t.Fatalf("dry results: got %d, want 1", len(drySum.Results))
	}
	if got, want := drySum.Results[0].NewSize, wetSum.Results[0].NewSize; got != want {
		t.Errorf("dry-run NewSize = %d, want %d (same as a wet run)", got, want)
	}
	if !strings.HasPrefix(drySum.Results[0].Dest, dry.DestDir) {
		t.Errorf("dry-run should report the would-be destination, got %s", drySum.Results[0].Dest)
	}
}

func TestRun_PerFileErrorDoesNotAbort(t *testing.T) {
	srcDir := t.TempDir()
	destDir := filepath.Join(t.TempDir(), "out")
	if err := os.WriteFile(filepath.Join(srcDir, "a.jpg"), []byte("garbage"), 0o644); err != nil {
		t.Fatal(err)
	}
	writeImage(t, filepath.Join(srcDir, "b.png"), imaging.PNG)

	cfg := testConfig(srcDir)
	cfg.DestDir = destDir
	sum := runPipeline(t, &cfg)

	if len(sum.Results) != 2 {
		t.Fatalf("results: got %d, want 2", len(sum.Results))
	}
	if !sum.Results[0].IsError() {
		t.Errorf("a.jpg: status = %q, want error", sum.Results[0].Status)
	}
	if sum.Results[1].Status != StatusOptimized {
		t.Errorf("b.png: status = %q, want optimized (batch must continue)", sum.Results[1].Status)
	}
}

// --- Helpers ---

func testConfig(srcDir string) config.Config {
	cfg := config.DefaultConfig()
	cfg.SrcDir = srcDir
	cfg.ColorMode = config.ColorNever
	return cfg
}

func runPipeline(t *testing.T, cfg *config.Config) RunSummary {
	t.Helper()
	log, err := logging.NewLogger(cfg)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	defer log.Close()
	return Run(context.Background(), cfg, log)
}

// writeImage writes a small gradient image at path in the given format,
// creating parent directories.
func writeImage(t *testing.T, path string, f imaging.Format) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := imaging.New(48, 48, color.NRGBA{R: 90, G: 120, B: 180, A: 255})
	for x := 0; x < 48; x++ {
		for y := 0; y < 24; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 5), G: uint8(y * 5), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, f); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		t.Fatal(err)
	}
}

// writeWebpImage writes the writeImage gradient as WEBP. The encode goes
// through libvips since there is no pure-Go webp encoder.
func writeWebpImage(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	img := imaging.New(48, 48, color.NRGBA{R: 90, G: 120, B: 180, A: 255})
	for x := 0; x < 48; x++ {
		for y := 0; y < 24; y++ {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 5), G: uint8(y * 5), B: 40, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		t.Fatalf("encode %s: %v", path, err)
	}
	wb, err := bimg.NewImage(buf.Bytes()).Convert(bimg.WEBP)
	if err != nil {
		t.Fatalf("convert %s to webp: %v", path, err)
	}
	if err := os.WriteFile(path, wb, 0o644); err != nil {
		t.Fatal(err)
	}
}

func touch(t *testing.T, dir, name string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte{}, 0o644); err != nil {
		t.Fatalf("touch %s: %v", path, err)
	}
}

func basenames(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		out[i] = filepath.Base(p)
	}
	return out
}

func sliceEqual(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
