package quizsync

import (
	"strings"

	"github.com/DiversioTeam/ClassQuiz/internal/domain"
)

// SessionOneTitle is the quiz the hard alias/container questions belong to.
const SessionOneTitle = "Python Data Model – Session 1 Quiz"

// ConnectionTestTitle is the warm-up quiz used to verify connectivity.
const ConnectionTestTitle = "Connection Test Quiz"

// TrickyTimeSeconds is the extended time limit for the hard questions.
const TrickyTimeSeconds = 75

// QuestionDef describes one question to append. Marker is a stable
// substring of the question text used to detect whether the question is
// already present in a quiz.
type QuestionDef struct {
	Marker     string
	Question   string
	Answers    []string
	RightIndex int
}

// Payload converts the definition into the editor API question shape.
// Answers that contain list/dict output get wrapped in backticks so they
// render as inline code.
func (d QuestionDef) Payload() domain.QuizQuestion {
	answers := make([]domain.QuizAnswer, 0, len(d.Answers))
	for i, text := range d.Answers {
		if needsInlineCode(text) {
			text = "`" + text + "`"
		}
		answers = append(answers, domain.QuizAnswer{
			Right:  i == d.RightIndex,
			Answer: text,
		})
	}
	return domain.QuizQuestion{
		Question: dedent(d.Question),
		Time:     "60",
		Type:     "ABCD",
		Answers:  answers,
	}
}

func needsInlineCode(answer string) bool {
	return strings.Contains(answer, "[") ||
		strings.Contains(answer, "items:") ||
		strings.Contains(answer, "alias:")
}

// SessionOneHardQuestions returns the hard container/namespace questions
// appended to the Session 1 quiz.
func SessionOneHardQuestions() []QuestionDef {
	return []QuestionDef{
		{
			Marker: "Row aliasing across copies",
			Question: `
				Row aliasing across copies: what gets printed?

				row = [0]
				matrix = [row] * 3
				clone = matrix[:]

				row.append(1)
				matrix[1].append(2)

				print("row:", row)
				print("matrix:", matrix)
				print("clone:", clone)
			`,
			Answers: []string{
				"row: [0, 1, 2], matrix: [[0, 1, 2], [0, 1, 2], [0, 1, 2]], clone: [[0, 1, 2], [0, 1, 2], [0, 1, 2]]",
				"row: [0, 1, 2], matrix: [[0, 1, 2], [0, 1, 2], [0, 1, 2]], clone: [[0, 1], [0, 1], [0, 1]]",
				"row: [0, 1], matrix: [[0, 1, 2], [0, 1, 2], [0, 1, 2]], clone: [[0, 1], [0, 1], [0, 1]]",
				"row: [0, 1, 2], matrix: [[0, 1], [0, 1], [0, 1]], clone: [[0, 1, 2], [0, 1, 2], [0, 1, 2]]",
			},
			RightIndex: 0,
		},
		{
			Marker: "Tuple of lists: shared vs copied",
			Question: `
				Tuple of lists: shared vs copied – what gets printed?

				inner = [0]
				t1 = (inner, inner)
				t2 = (inner[:], inner[:])

				inner.append(1)

				print("t1:", t1)
				print("t2:", t2)
			`,
			Answers: []string{
				"t1: ([0, 1], [0, 1]), t2: ([0], [0])",
				"t1: ([0], [0]), t2: ([0, 1], [0, 1])",
				"t1: ([0, 1], [0, 1]), t2: ([0, 1], [0, 1])",
				"t1: ([0], [0, 1]), t2: ([0], [0, 1])",
			},
			RightIndex: 0,
		},
		{
			Marker: "Dict values: mutate vs rebind",
			Question: `
				Dict values: mutate vs rebind – what do these fields contain?

				shared = []
				config = {"a": shared, "b": shared}

				config["a"].append(1)
				config["b"] = config["b"] + [2]

				print("config['a']:", config["a"])
				print("config['b']:", config["b"])
			`,
			Answers: []string{
				"config['a']: [1], config['b']: [1, 2]",
				"config['a']: [1, 2], config['b']: [1, 2]",
				"config['a']: [1, 2], config['b']: [2]",
				"config['a']: [1], config['b']: [2]",
			},
			RightIndex: 0,
		},
		{
			Marker: "Mutate inner, then rebind slot",
			Question: `
				Mutate inner list, then rebind the slot – what do ` + "`data`" + ` and ` + "`alias`" + ` see?

				def tweak(seq):
				    first = seq[0]
				    first.append("X")
				    seq[0] = first + ["Y"]

				data = [[1], [2]]
				alias = data

				tweak(data)

				print("data:", data)
				print("alias:", alias)
			`,
			Answers: []string{
				"data: [[1, 'X', 'Y'], [2]], alias: [[1, 'X', 'Y'], [2]]",
				"data: [[1, 'X'], [2]], alias: [[1, 'X'], [2]]",
				"data: [[1, 'X', 'Y'], [2]], alias: [[1], [2]]",
				"data: [[1], [2]], alias: [[1, 'X', 'Y'], [2]]",
			},
			RightIndex: 0,
		},
		{
			Marker: "Breaking aliases with rebinding",
			Question: `
				Breaking aliases with rebinding – what do ` + "`a`" + `, ` + "`b`" + `, and ` + "`nums`" + ` contain?

				nums = [1, 2, 3]
				a = nums
				b = nums[:]

				nums = nums + [4]
				nums.append(5)

				print("a:", a)
				print("b:", b)
				print("nums:", nums)
			`,
			Answers: []string{
				"a: [1, 2, 3], b: [1, 2, 3], nums: [1, 2, 3, 4, 5]",
				"a: [1, 2, 3, 4, 5], b: [1, 2, 3], nums: [1, 2, 3, 4, 5]",
				"a: [1, 2, 3, 4], b: [1, 2, 3], nums: [1, 2, 3, 4, 5]",
				"a: [1, 2, 3, 4], b: [1, 2, 3, 4], nums: [1, 2, 3, 4, 5]",
			},
			RightIndex: 0,
		},
		{
			Marker: "Outer rebind vs inner mutate with slices",
			Question: `
				Outer rebind vs inner mutate with slices – what do the three lists contain?

				rows = [[0], [0]]
				alias = rows
				clone = rows[:]

				alias[0] = [1]
				clone[1].append(2)

				print("rows:", rows)
				print("alias:", alias)
				print("clone:", clone)
			`,
			Answers: []string{
				"rows: [[1], [0, 2]], alias: [[1], [0, 2]], clone: [[0], [0, 2]]",
				"rows: [[1], [0]], alias: [[1], [0]], clone: [[1], [0, 2]]",
				"rows: [[1], [0, 2]], alias: [[1], [0]], clone: [[0], [0, 2]]",
				"rows: [[1], [0, 2]], alias: [[1], [0, 2]], clone: [[1], [0, 2]]",
			},
			RightIndex: 0,
		},
		{
			Marker: "*= with nested lists",
			Question: `
				Using ` + "`*=`" + ` with a list of lists – what happens to ` + "`nested`" + ` and ` + "`alias`" + `?

				nested = [[1], [2]]
				alias = nested

				nested *= 2
				nested[0].append(3)

				print("nested:", nested)
				print("alias:", alias)
			`,
			Answers: []string{
				"nested: [[1, 3], [2], [1, 3], [2]], alias: [[1, 3], [2], [1, 3], [2]]",
				"nested: [[1, 3], [2], [1], [2]], alias: [[1, 3], [2], [1], [2]]",
				"nested: [[1, 3], [2], [1, 3], [2]], alias: [[1], [2]]",
				"nested: [[1], [2], [1], [2]], alias: [[1, 3], [2], [1, 3], [2]]",
			},
			RightIndex: 0,
		},
		{
			Marker: "Module vs class vs instance name",
			Question: `
				Module vs class vs instance name – what does ` + "`obj.show()`" + ` print?

				x = "module"

				class Thing:
				    x = "class"
				    def __init__(self):
				        self.x = "instance"
				    def show(self):
				        print(x, self.x, Thing.x)

				obj = Thing()
				obj.show()
			`,
			Answers: []string{
				"It prints `module instance class`.",
				"It prints `class instance class`.",
				"It prints `module class instance`.",
				"It prints `instance instance instance`.",
			},
			RightIndex: 0,
		},
		{
			Marker: "Global rebinding vs aliased list",
			Question: `
				Global rebinding vs aliased list – what do ` + "`items`" + ` and ` + "`alias`" + ` contain?

				items = []

				def add():
				    items.append("A")

				def reset():
				    global items
				    items = []

				add()
				alias = items
				reset()

				print("items:", items)
				print("alias:", alias)
			`,
			Answers: []string{
				"items: [], alias: ['A']",
				"items: ['A'], alias: ['A']",
				"items: [], alias: []",
				"items: ['A'], alias: []",
			},
			RightIndex: 0,
		},
	}
}

// ConnectionTestQuiz builds the full warm-up quiz payload used when the
// quiz does not exist yet: seven short questions to verify connectivity
// and formatting.
func ConnectionTestQuiz() domain.Quiz {
	q := func(text string, seconds string, answers []domain.QuizAnswer) domain.QuizQuestion {
		return domain.QuizQuestion{
			Question: dedent(text),
			Time:     seconds,
			Type:     "ABCD",
			Answers:  answers,
		}
	}
	a := func(text string, right bool) domain.QuizAnswer {
		return domain.QuizAnswer{Answer: text, Right: right}
	}

	return domain.Quiz{
		Public:      false,
		Title:       ConnectionTestTitle,
		Description: "Short warm-up quiz to verify connectivity and formatting.",
		Questions: []domain.QuizQuestion{
			q(`
				Given this function, what does ` + "`sum_positive([-1, 1, 2])`" + ` print?

				def sum_positive(nums):
				    total = 0
				    for n in nums:
				        if n > 0:
				            total += n
				    return total

				print(sum_positive([-1, 1, 2]))
			`, "30", []domain.QuizAnswer{
				a("`3`", true), a("`2`", false), a("`6`", false), a("`It raises a TypeError`", false),
			}),
			q("Quick sanity check: what is `1 + 1`?", "30", []domain.QuizAnswer{
				a("`1`", false), a("`2`", true), a("`3`", false), a("`4`", false),
			}),
			q("Which of these is a day of the week?", "30", []domain.QuizAnswer{
				a("`Blue`", false), a("`Circle`", false), a("`Wednesday`", true), a("`Triangle`", false),
			}),
			q("Read the sentence and answer: <b>All participants will complete a short survey after the quiz.</b> Which statement is true?", "45", []domain.QuizAnswer{
				a("Only some participants will complete a survey.", false),
				a("No surveys will be used.", false),
				a("Every participant is expected to complete a survey.", true),
				a("The survey happens before the quiz.", false),
			}),
			q(`
				What does this loop print?

				total = 0
				for i in range(3):
				    total += i
				print(total)
			`, "30", []domain.QuizAnswer{
				a("`3`", true), a("`2`", false), a("`6`", false), a("`It raises an error`", false),
			}),
			q(`
				For this code, what gets printed?

				values = [1, 2, 3]
				for v in values:
				    if v % 2 == 0:
				        print(v)
			`, "30", []domain.QuizAnswer{
				a("`1`", false), a("`2`", true), a("`3`", false), a("`1 3`", false),
			}),
			q(`
				What does this program print?

				x = 1

				def f():
				    x = 2
				    print(x)

				f()
				print(x)
			`, "30", []domain.QuizAnswer{
				a("`2 then 1`", true), a("`1 then 2`", false), a("`2 then 2`", false), a("`1 then 1`", false),
			}),
		},
	}
}

// connectionTestNormalizedIndexes lists the code-heavy questions whose
// text the normalize job owns. The conceptual questions in between keep
// whatever text they have.
var connectionTestNormalizedIndexes = []int{0, 4, 5, 6}

// ConnectionTestNormalizedTexts maps question index to the desired
// "title + blank line + code block" text for the code-heavy questions.
// The indexes are fixed positions in the seven-question quiz, not derived
// from the payload shape, so the job targets the same questions on any
// deployment that already carries the quiz.
func ConnectionTestNormalizedTexts() map[int]string {
	questions := ConnectionTestQuiz().Questions
	texts := make(map[int]string, len(connectionTestNormalizedIndexes))
	for _, index := range connectionTestNormalizedIndexes {
		texts[index] = questions[index].Question
	}
	return texts
}

// dedent strips the common leading tab indentation raw multi-line literals
// carry, plus surrounding blank lines.
func dedent(text string) string {
	lines := strings.Split(text, "\n")

	prefix := ""
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		if prefix == "" || len(indent) < len(prefix) {
			prefix = indent
		}
	}

	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			lines[i] = ""
			continue
		}
		lines[i] = strings.TrimPrefix(line, prefix)
	}
	return strings.Trim(strings.Join(lines, "\n"), "\n")
}
