package main

import (
	"bytes"
	"database/sql"
	"os"
	"path/filepath"
	"testing"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

// writeWordNetFile writes a chain 1-2-3-4-5 of noun synsets:
// bank (money) - money - cash - water - bank (river).
func writeWordNetFile(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "wordnet.db")

	db, err := sql.Open(helper.DriverSqlite, path)
	require.NoError(t, err)
	defer db.Close()

	statements := []string{
		`CREATE TABLE synsets (synsetid INTEGER PRIMARY KEY, pos TEXT NOT NULL, definition TEXT)`,
		`CREATE TABLE words (wordid INTEGER PRIMARY KEY, lemma TEXT NOT NULL)`,
		`CREATE TABLE senses (wordid INTEGER NOT NULL, synsetid INTEGER NOT NULL, old_sensekey TEXT)`,
		`CREATE TABLE morphs (morphid INTEGER PRIMARY KEY, morph TEXT NOT NULL)`,
		`CREATE TABLE morphmaps (wordid INTEGER NOT NULL, pos TEXT, morphid INTEGER NOT NULL)`,
		`CREATE TABLE linktypes (linkid INTEGER PRIMARY KEY, link TEXT NOT NULL, linktype TEXT)`,
		`CREATE TABLE semlinks (synset1id INTEGER NOT NULL, synset2id INTEGER NOT NULL, linkid INTEGER NOT NULL)`,
		`INSERT INTO linktypes VALUES (1, 'hypernym', 'sem')`,
		`INSERT INTO synsets VALUES (1, 'n', 'a financial institution'), (2, 'n', 'a medium of exchange'),
			(3, 'n', 'money in the form of coins or notes'), (4, 'n', 'a clear liquid'), (5, 'n', 'sloping land beside water')`,
		`INSERT INTO words VALUES (1, 'bank'), (2, 'money'), (3, 'cash'), (4, 'water'), (5, 'river')`,
		`INSERT INTO senses VALUES (1, 1, 'bank%1:14:00::'), (2, 2, 'money%1:21:00::'), (3, 3, 'cash%1:21:00::'),
			(4, 4, 'water%1:27:00::'), (1, 5, 'bank%1:17:01::'), (5, 5, 'river%1:17:00::')`,
		`INSERT INTO semlinks VALUES (1, 2, 1), (2, 3, 1), (3, 4, 1), (4, 5, 1)`,
	}
	for _, stmt := range statements {
		_, err := db.Exec(stmt)
		require.NoError(t, err)
	}

	return path
}

func writeTestCases(t *testing.T) string {
	path := filepath.Join(t.TempDir(), "testcases")
	content := "money bank cash,bank%1:14:00::,NOUN\nriver bank water,bank%1:17:01::,NOUN\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func execute(t *testing.T, args ...string) (string, error) {
	cmd := rootCmd()
	var out, errOut bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&errOut)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestVersionCmd(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Contains(t, out, "wsdgraph version "+Version)
}

func TestGraphCmds(t *testing.T) {
	wordnet := writeWordNetFile(t)

	t.Run("distance", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "distance", "bank%1:14:00::", "cash%1:21:00::")
		require.NoError(t, err, "Expected distance to not return an error")
		assert.Equal(t, "2\n", out)
	})

	t.Run("distance with unknown key", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "distance", "bank%1:14:00::", "xyzzy%1:00:00::")
		assert.Error(t, err)
	})

	t.Run("distance with lexical link type", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "--link-type", "derivation", "distance", "bank%1:14:00::", "cash%1:21:00::")
		assert.Error(t, err, "Expected an unknown link type to fail")
	})

	t.Run("neighbors", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "neighbors", "3", "--hops", "1")
		require.NoError(t, err)
		assert.Equal(t, "0\t3\t3\n1\t2\t3>2\n1\t4\t3>4\n", out)
	})

	t.Run("neighbors ids", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "neighbors", "3", "--ids")
		require.NoError(t, err)
		assert.Equal(t, "2\n4\n", out)
	})

	t.Run("neighbors with invalid id", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "neighbors", "three")
		assert.Error(t, err)
	})

	t.Run("links", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "links", model.LinkHypernym)
		require.NoError(t, err)
		assert.Equal(t, "1-->2\n2-->3\n3-->4\n4-->5\n", out)
	})

	t.Run("sense", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "sense", "3")
		require.NoError(t, err)
		assert.Equal(t, "3\tn\tcash%1:21:00::\tmoney in the form of coins or notes\n", out)
	})

	t.Run("synsets of lemmas", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "synsets", "bank", "cash")
		require.NoError(t, err)
		assert.Equal(t, "1\n3\n5\n", out)
	})

	t.Run("synsets of pos", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "synsets", "--pos", "n")
		require.NoError(t, err)
		assert.Contains(t, out, "5\tbank%1:17:01::,river%1:17:00::\tsloping land beside water\n")
		assert.Contains(t, out, "1\tbank%1:14:00::\ta financial institution\n")
	})

	t.Run("synsets without arguments", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "synsets")
		assert.Error(t, err, "Expected synsets to need lemmas or a pos")
	})

	t.Run("synsets of invalid pos", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "synsets", "--pos", "x")
		assert.Error(t, err)
	})
}

func TestEvalCmd(t *testing.T) {
	wordnet := writeWordNetFile(t)
	cases := writeTestCases(t)

	t.Run("eval closest sense", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "eval", cases, "--scorer", "nearest_context", "--closest", "--workers", "2")
		require.NoError(t, err, "Expected eval to not return an error")

		var summary model.Summary
		require.NoError(t, yaml.Unmarshal([]byte(out), &summary))
		assert.Equal(t, 2, summary.Cases)
		assert.Equal(t, 1.0, summary.Accuracy)
		assert.Equal(t, "nearest_context (closest)", summary.Scorer)
		assert.NotEmpty(t, summary.RunID)
	})

	t.Run("eval with metrics", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "eval", cases, "--scorer", "distance_sum", "--metrics")
		require.NoError(t, err)
		assert.Contains(t, out, "accuracy: 0")
		assert.Contains(t, out, "# metrics")
		assert.Contains(t, out, "wsdgraph_neighbor_expansions_total")
	})

	t.Run("eval list", func(t *testing.T) {
		out, err := execute(t, "--wordnet", wordnet, "eval", cases, "--list")
		require.NoError(t, err)
		assert.Contains(t, out, "bank: bank%1:14:00:: FROM ")
	})

	t.Run("eval with unknown scorer", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "eval", cases, "--scorer", "oracle")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unknown scorer")
	})

	t.Run("eval with missing file", func(t *testing.T) {
		_, err := execute(t, "--wordnet", wordnet, "eval", filepath.Join(t.TempDir(), "missing"))
		assert.Error(t, err)
	})
}
