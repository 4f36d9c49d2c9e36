package recorder

import (
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/bascanada/harmonium-sub001/internal/event"
)

// divisionsPerQuarter fixes MusicXML <divisions> so that one sequencer
// step (a 16th note) is exactly one division, matching the MIDI encoder's
// ticksPerStep choice of "one step = one fixed unit" in spirit.
const divisionsPerQuarter = 4

// stepsPerMeasure assumes a constant 4/4 time signature; spec §6 only
// asks for "measures sized by time signature" without naming a variable
// meter source in the event stream, so 4/4 is the fixed default.
const stepsPerMeasure = 16

type musicxmlNote struct {
	startStep int
	durSteps  int
	midiNote  int
}

// musicxmlBuilder collects NoteOn/NoteOff pairs per channel as the Truth
// log accumulates, then renders a single score-partwise document on
// StopRecording(MusicXML).
type musicxmlBuilder struct {
	notesByChannel map[int][]musicxmlNote
	openByChannel  map[int]map[uint64]musicxmlNote
}

func newMusicxmlBuilder() *musicxmlBuilder {
	return &musicxmlBuilder{
		notesByChannel: make(map[int][]musicxmlNote),
		openByChannel:  make(map[int]map[uint64]musicxmlNote),
	}
}

func (b *musicxmlBuilder) noteOn(stepTime float64, e event.NoteOn) {
	open, ok := b.openByChannel[e.Channel]
	if !ok {
		open = make(map[uint64]musicxmlNote)
		b.openByChannel[e.Channel] = open
	}
	open[e.ID] = musicxmlNote{startStep: int(stepTime + 0.5), midiNote: e.Note}
}

func (b *musicxmlBuilder) noteOff(stepTime float64, e event.NoteOff) {
	open := b.openByChannel[e.Channel]
	n, ok := open[e.ID]
	if !ok {
		return
	}
	delete(open, e.ID)
	n.durSteps = int(stepTime+0.5) - n.startStep
	if n.durSteps <= 0 {
		n.durSteps = 1
	}
	b.notesByChannel[e.Channel] = append(b.notesByChannel[e.Channel], n)
}

// --- score-partwise XML shape ---

type scorePartwise struct {
	XMLName  xml.Name    `xml:"score-partwise"`
	Version  string      `xml:"version,attr"`
	PartList partList    `xml:"part-list"`
	Parts    []scorePart `xml:"part"`
}

type partList struct {
	ScoreParts []scorePartEntry `xml:"score-part"`
}

type scorePartEntry struct {
	ID        string `xml:"id,attr"`
	PartName  string `xml:"part-name"`
}

type scorePart struct {
	ID       string    `xml:"id,attr"`
	Measures []measure `xml:"measure"`
}

type measure struct {
	Number    string     `xml:"number,attr"`
	Attributes *attrs     `xml:"attributes"`
	Notes     []xmlNote  `xml:"note"`
}

type attrs struct {
	Divisions int  `xml:"divisions"`
	Key       *key `xml:"key"`
	Time      *timeSig `xml:"time"`
}

type key struct {
	Fifths int `xml:"fifths"`
}

type timeSig struct {
	Beats    int `xml:"beats"`
	BeatType int `xml:"beat-type"`
}

type xmlNote struct {
	Rest     *struct{} `xml:"rest,omitempty"`
	Pitch    *pitchXML `xml:"pitch,omitempty"`
	Duration int       `xml:"duration"`
	Type     string    `xml:"type"`
}

type pitchXML struct {
	Step   string `xml:"step"`
	Alter  int    `xml:"alter,omitempty"`
	Octave int    `xml:"octave"`
}

// spelling assumes no sharps/flats (fifths=0): recorder only sees the
// NoteOn/NoteOff event stream, not the harmonic driver's live key center,
// so there is no grounded way to pick a non-trivial key signature here;
// documented as an Open Question decision rather than guessed.
var chromaticSpelling = [12]struct {
	step  string
	alter int
}{
	{"C", 0}, {"C", 1}, {"D", 0}, {"D", 1}, {"E", 0}, {"F", 0},
	{"F", 1}, {"G", 0}, {"G", 1}, {"A", 0}, {"A", 1}, {"B", 0},
}

func spellMIDI(note int) pitchXML {
	pc := note % 12
	octave := note/12 - 1
	s := chromaticSpelling[pc]
	return pitchXML{Step: s.step, Alter: s.alter, Octave: octave}
}

// noteTypeName approximates the MusicXML note-type name for a duration
// given in divisions (1 division = 1 sixteenth note at
// divisionsPerQuarter=4).
func noteTypeName(durSteps int) string {
	switch {
	case durSteps <= 1:
		return "16th"
	case durSteps <= 2:
		return "eighth"
	case durSteps <= 4:
		return "quarter"
	case durSteps <= 8:
		return "half"
	default:
		return "whole"
	}
}

func roleName(channel int) string {
	switch channel {
	case 0:
		return "Bass"
	case 1:
		return "Lead"
	case 2:
		return "Snare"
	case 3:
		return "Hat"
	default:
		return "Poly"
	}
}

func (b *musicxmlBuilder) finish() []byte {
	channels := make([]int, 0, len(b.notesByChannel))
	for ch := range b.notesByChannel {
		channels = append(channels, ch)
	}
	sort.Ints(channels)

	doc := scorePartwise{Version: "4.0"}
	for _, ch := range channels {
		notes := b.notesByChannel[ch]
		sort.Slice(notes, func(i, j int) bool { return notes[i].startStep < notes[j].startStep })

		partID := partIDForChannel(ch)
		doc.PartList.ScoreParts = append(doc.PartList.ScoreParts, scorePartEntry{
			ID:       partID,
			PartName: roleName(ch),
		})
		doc.Parts = append(doc.Parts, buildPart(partID, notes))
	}
	out, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil
	}
	header := []byte(xml.Header)
	return append(header, out...)
}

func partIDForChannel(ch int) string {
	return "P" + roleName(ch)
}

func buildPart(partID string, notes []musicxmlNote) scorePart {
	part := scorePart{ID: partID}
	if len(notes) == 0 {
		return part
	}

	lastStep := notes[len(notes)-1].startStep + notes[len(notes)-1].durSteps
	totalMeasures := lastStep/stepsPerMeasure + 1

	// cursor tracks the next free step within the current measure so gaps
	// between notes become explicit rests.
	cursor := 0
	noteIdx := 0
	for m := 0; m < totalMeasures; m++ {
		meas := measure{Number: strconv.Itoa(m + 1)}
		if m == 0 {
			meas.Attributes = &attrs{
				Divisions: divisionsPerQuarter,
				Key:       &key{Fifths: 0},
				Time:      &timeSig{Beats: 4, BeatType: 4},
			}
		}
		measureEnd := (m + 1) * stepsPerMeasure
		for cursor < measureEnd {
			if noteIdx < len(notes) && notes[noteIdx].startStep == cursor {
				n := notes[noteIdx]
				dur := n.durSteps
				if cursor+dur > measureEnd {
					dur = measureEnd - cursor
				}
				p := spellMIDI(n.midiNote)
				meas.Notes = append(meas.Notes, xmlNote{
					Pitch:    &p,
					Duration: dur,
					Type:     noteTypeName(dur),
				})
				cursor += dur
				noteIdx++
			} else {
				gap := measureEnd - cursor
				if noteIdx < len(notes) && notes[noteIdx].startStep < measureEnd {
					gap = notes[noteIdx].startStep - cursor
				}
				meas.Notes = append(meas.Notes, xmlNote{
					Rest:     &struct{}{},
					Duration: gap,
					Type:     noteTypeName(gap),
				})
				cursor += gap
			}
		}
		part.Measures = append(part.Measures, meas)
	}
	return part
}
