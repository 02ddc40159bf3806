package wsd

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/siherrmann/wsdgraph/helper"
	"github.com/siherrmann/wsdgraph/model"
)

// ParseTestCase parses one test case line:
//
//	context words with the target in the middle,correct key,...,POS
//
// The target is taken out of the context at index (len-1)/2.
func ParseTestCase(line string) (*model.TestCase, error) {
	fields := strings.Split(strings.TrimSpace(line), ",")
	if len(fields) < 2 {
		return nil, helper.NewError("parse test case", fmt.Errorf("expected context and pos fields, got %d field(s)", len(fields)))
	}

	words := strings.Fields(fields[0])
	if len(words) == 0 {
		return nil, helper.NewError("parse test case", fmt.Errorf("empty context"))
	}

	middle := (len(words) - 1) / 2
	target := words[middle]
	context := make([]string, 0, len(words)-1)
	context = append(context, words[:middle]...)
	context = append(context, words[middle+1:]...)

	correct := make([]string, 0, len(fields)-2)
	for _, key := range fields[1 : len(fields)-1] {
		if key = strings.TrimSpace(key); key != "" {
			correct = append(correct, key)
		}
	}

	return &model.TestCase{
		Context:     context,
		Target:      target,
		Correct:     correct,
		SenseFilter: model.SenseFilterForPOS(fields[len(fields)-1]),
	}, nil
}

// ReadTestCases parses one test case per non-empty line.
func ReadTestCases(r io.Reader) ([]*model.TestCase, error) {
	var cases []*model.TestCase

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		testCase, err := ParseTestCase(line)
		if err != nil {
			return nil, helper.NewError(fmt.Sprintf("line %d", lineNumber), err)
		}
		cases = append(cases, testCase)
	}

	err := scanner.Err()
	if err != nil {
		return nil, helper.NewError("read test cases", err)
	}

	return cases, nil
}
