package cmd

import (
	"bytes"
	"io"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"massnet.org/hashcore/errors"
	"massnet.org/hashcore/hmac"
	"massnet.org/hashcore/merkle"
	"massnet.org/hashcore/sha256"
	"massnet.org/hashcore/version"
)

const (
	abcDigest   = "ba7816bf8f01cfea414140de5dae2223b00361a396177a9cb410ff61f20015ad"
	emptyDigest = "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855"
)

func runApp(t *testing.T, a *app, args ...string) (string, error) {
	logDir, err := ioutil.TempDir("", "hashcli-test")
	require.NoError(t, err)
	defer os.RemoveAll(logDir)

	var out bytes.Buffer
	root := a.rootCmd()
	root.SetOutput(&out)
	root.SetArgs(append([]string{"--log_dir", logDir}, args...))
	err = root.Execute()
	return out.String(), err
}

func execute(t *testing.T, in io.Reader, args ...string) (string, error) {
	return runApp(t, newApp(in), args...)
}

// executeWithSecret answers the key prompt with secret, an empty secret
// fails the read.
func executeWithSecret(t *testing.T, secret string, args ...string) (string, error) {
	a := newApp(nil)
	a.readSecret = func(string) ([]byte, error) {
		if secret == "" {
			return nil, io.ErrUnexpectedEOF
		}
		return []byte(secret), nil
	}
	return runApp(t, a, args...)
}

func lines(s string) []string {
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func assertCode(t *testing.T, code uint32, err error) {
	t.Helper()
	if assert.Error(t, err) {
		assert.Equal(t, code, errors.Code(pkgerrors.Cause(err)), err.Error())
	}
}

func TestHashArgs(t *testing.T) {
	out, err := execute(t, nil, "hash", "abc", "", "hello world")
	require.NoError(t, err)
	assert.Equal(t, []string{
		abcDigest + "  abc",
		emptyDigest + "  ",
		"b94d27b9934d3e08a52e52d7da7dabfac484efe37a5380ee9088f7ace2efcde9  hello world",
	}, lines(out))
}

func TestHashOrderWithManyWorkers(t *testing.T) {
	args := []string{"--workers", "4", "hash"}
	for i := 0; i < 64; i++ {
		args = append(args, strings.Repeat("x", i))
	}
	out, err := execute(t, nil, args...)
	require.NoError(t, err)

	got := lines(out)
	require.Len(t, got, 64)
	for i, line := range got {
		want := sha256.SumHex([]byte(strings.Repeat("x", i))) + "  " + strings.Repeat("x", i)
		if line != want {
			t.Errorf("%d, line not equal, got = %v, want = %v", i, line, want)
		}
	}
}

func TestHashFlags(t *testing.T) {
	dir, err := ioutil.TempDir("", "hashcli-files")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	name := filepath.Join(dir, "abc.txt")
	require.NoError(t, ioutil.WriteFile(name, []byte("abc"), 0644))

	tests := []*struct {
		args []string
		out  []string
		code uint32
	}{
		{args: []string{"hash", "--hex", "616263"}, out: []string{abcDigest + "  616263"}},
		{args: []string{"hash", "--double", "abc"}, out: []string{sha256.DoubleSum256([]byte("abc")).String() + "  abc"}},
		{args: []string{"hash", "-f", name, "abc"}, out: []string{abcDigest + "  abc", abcDigest + "  " + name}},
		{args: []string{"hash", "--hex", "61zz"}, code: errors.ErrCLIDecodeHexString},
		{args: []string{"hash", "-f", filepath.Join(dir, "missing")}, code: errors.ErrCLIReadInput},
	}

	for i, test := range tests {
		out, err := execute(t, nil, test.args...)
		if test.code != 0 {
			assertCode(t, test.code, err)
			continue
		}
		if !assert.NoError(t, err, "case %d", i) {
			continue
		}
		assert.Equal(t, test.out, lines(out), "case %d", i)
	}
}

func TestHashStdin(t *testing.T) {
	out, err := execute(t, strings.NewReader("abc"), "hash")
	require.NoError(t, err)
	assert.Equal(t, abcDigest+"  -\n", out)
}

func TestHmac(t *testing.T) {
	fox := "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"
	msg := "The quick brown fox jumps over the lazy dog"

	tests := []*struct {
		args []string
		out  string
		code uint32
	}{
		{args: []string{"hmac", "--key", "key", msg}, out: fox},
		{args: []string{"hmac", "--key-hex", "--key", "6b6579", msg}, out: fox},
		{args: []string{"hmac", "--key", "", ""}, out: hmac.Sum(nil, nil).String()},
		{args: []string{"hmac", "--key", "key", "--verify", fox, msg}, out: "OK"},
		{args: []string{"hmac", msg}, code: errors.ErrCLIMissingKey},
		{args: []string{"hmac", "--key-hex", "--key", "xyz", msg}, code: errors.ErrCLIDecodeHexString},
		{args: []string{"hmac", "--key", "key", "--verify", "00", msg}, code: errors.ErrCLIDecodeHexString},
		{args: []string{"hmac", "--key", "kez", "--verify", fox, msg}, out: "FAILED", code: errors.ErrCLITagMismatch},
	}

	for i, test := range tests {
		out, err := execute(t, nil, test.args...)
		if test.out != "" {
			assert.Equal(t, test.out+"\n", out, "case %d", i)
		}
		if test.code != 0 {
			assertCode(t, test.code, err)
		} else {
			assert.NoError(t, err, "case %d", i)
		}
	}
}

func TestHmacKeyPrompt(t *testing.T) {
	msg := "The quick brown fox jumps over the lazy dog"
	fox := "f7bc83f430538424b13298e6aa6fb143ef4d59a14946175997479dbc2d1a3cd8"

	out, err := executeWithSecret(t, "key", "hmac", "--key-prompt", msg)
	require.NoError(t, err)
	assert.Equal(t, fox+"\n", out)

	out, err = executeWithSecret(t, "6b6579", "hmac", "--key-prompt", "--key-hex", msg)
	require.NoError(t, err)
	assert.Equal(t, fox+"\n", out)

	_, err = executeWithSecret(t, "", "hmac", "--key-prompt", msg)
	assertCode(t, errors.ErrCLIReadInput, err)

	_, err = executeWithSecret(t, "key", "hmac", "--key-prompt", "--key", "key", msg)
	assertCode(t, errors.ErrCLIInvalidParameter, err)
}

func TestParameterErrors(t *testing.T) {
	tests := []*struct {
		args []string
	}{
		{args: []string{"--bogus"}},
		{args: []string{"hash", "--nope", "abc"}},
		{args: []string{"--workers", "many", "hash", "abc"}},
		{args: []string{"hmac", "--key", "k"}},
		{args: []string{"hmac", "--key", "k", "a", "b"}},
		{args: []string{"version", "extra"}},
	}

	for _, test := range tests {
		_, err := execute(t, nil, test.args...)
		assertCode(t, errors.ErrCLIInvalidParameter, err)
	}
}

// captureStdout returns what fn writes to os.Stdout.
func captureStdout(t *testing.T, fn func()) string {
	r, w, err := os.Pipe()
	require.NoError(t, err)
	stdout := os.Stdout
	os.Stdout = w
	fn()
	os.Stdout = stdout
	require.NoError(t, w.Close())

	out, err := ioutil.ReadAll(r)
	require.NoError(t, err)
	return string(out)
}

func TestRunFailureLeavesStdoutEmpty(t *testing.T) {
	logDir, err := ioutil.TempDir("", "hashcli-test")
	require.NoError(t, err)
	defer os.RemoveAll(logDir)

	tests := []*struct {
		args []string
		code int
	}{
		{args: []string{"--bogus"}, code: 2},
		{args: []string{"hmac", "--key", "k"}, code: 2},
		{args: []string{"hash", "--nope", "abc"}, code: 2},
		{args: []string{"--log_dir", logDir, "hmac", "abc"}, code: 2},
		{args: []string{"--log_dir", logDir, "merkle", "zz"}, code: 3},
	}

	for i, test := range tests {
		var out, stderr bytes.Buffer
		var code int
		stdout := captureStdout(t, func() {
			root := newApp(nil).rootCmd()
			root.SetOutput(&out)
			root.SetArgs(test.args)
			code = run(root, &stderr)
		})

		if code != test.code {
			t.Errorf("%d, exit code not equal, got = %v, want = %v", i, code, test.code)
		}
		assert.Empty(t, stdout, "case %d", i)
		assert.Empty(t, out.String(), "case %d", i)
		assert.True(t, strings.HasPrefix(stderr.String(), "Error: "), "case %d", i)
	}
}

func TestRunSuccess(t *testing.T) {
	logDir, err := ioutil.TempDir("", "hashcli-test")
	require.NoError(t, err)
	defer os.RemoveAll(logDir)

	var out, stderr bytes.Buffer
	root := newApp(nil).rootCmd()
	root.SetOutput(&out)
	root.SetArgs([]string{"--log_dir", logDir, "hash", "abc"})

	assert.Equal(t, 0, run(root, &stderr))
	assert.Equal(t, abcDigest+"  abc\n", out.String())
	assert.Empty(t, stderr.String())
}

func TestMerkle(t *testing.T) {
	items := make([]sha256.Digest, 5)
	args := []string{"merkle"}
	for i := range items {
		items[i] = sha256.Sum256([]byte{byte(i)})
		args = append(args, items[i].String())
	}
	want, err := merkle.Root(items)
	require.NoError(t, err)

	out, err := execute(t, nil, args...)
	require.NoError(t, err)
	assert.Equal(t, want.String()+"\n", out)

	out, err = execute(t, nil, append([]string{"--workers", "2"}, append(args, "--cache", "4")...)...)
	require.NoError(t, err)
	assert.Equal(t, want.String()+"\n", out)
}

func TestMerkleLayers(t *testing.T) {
	x := sha256.Sum256([]byte("x"))
	out, err := execute(t, nil, "merkle", "--layers", x.String())
	require.NoError(t, err)

	hx := sha256.Sum256(x[:])
	root := merkle.HashBranch(hx, hx)
	assert.Equal(t, []string{
		"0 0 " + hx.String(),
		"0 1 " + hx.String(),
		"1 0 " + root.String(),
	}, lines(out))
}

func TestMerkleErrors(t *testing.T) {
	tests := []*struct {
		args []string
		code uint32
	}{
		{args: []string{"merkle"}, code: errors.ErrCLIEmptyMerkleItems},
		{args: []string{"merkle", "--layers"}, code: errors.ErrCLIEmptyMerkleItems},
		{args: []string{"merkle", abcDigest[:62]}, code: errors.ErrCLIDigestLength},
		{args: []string{"merkle", abcDigest, "zz" + abcDigest[2:]}, code: errors.ErrCLIDecodeHexString},
	}

	for _, test := range tests {
		_, err := execute(t, nil, test.args...)
		assertCode(t, test.code, err)
	}
}

func TestVersion(t *testing.T) {
	out, err := execute(t, nil, "version")
	require.NoError(t, err)
	assert.Equal(t, version.GetVersion()+"\n", out)
}

func TestInitConfig(t *testing.T) {
	dir, err := ioutil.TempDir("", "hashcli-config")
	require.NoError(t, err)
	defer os.RemoveAll(dir)
	cfgFile := filepath.Join(dir, "hashcli.json")
	require.NoError(t, ioutil.WriteFile(cfgFile, []byte(`{"log_level": "debug", "workers": 3}`), 0644))

	a := newApp(nil)
	a.cfgFile = cfgFile
	a.initConfig()
	assert.True(t, a.usingConfigFile)
	assert.Equal(t, &Config{LogDir: defaultLogDir, LogLevel: "debug", Workers: 3}, a.config)

	a = newApp(nil)
	a.cfgFile = filepath.Join(dir, "missing.json")
	a.initConfig()
	assert.False(t, a.usingConfigFile)
	assert.Equal(t, defaultLogLevel, a.config.LogLevel)
	assert.True(t, a.config.Workers > 0)
}

func TestExitCode(t *testing.T) {
	tests := []*struct {
		err  error
		code int
	}{
		{err: errors.New(errors.ErrCLIMissingKey, nil), code: 2},
		{err: pkgerrors.Wrap(errors.New(errors.ErrCLIDigestLength, nil), "wrapped"), code: 3},
		{err: errors.New(errors.ErrCLIWorkerPool, nil), code: 1},
		{err: io.EOF, code: 1},
	}

	for i, test := range tests {
		if got := exitCode(test.err); got != test.code {
			t.Errorf("%d, exitCode not equal, got = %v, want = %v", i, got, test.code)
		}
	}
}
