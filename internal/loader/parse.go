package loader

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html/charset"

	"attachsearch/internal/domain"
)

type vehicleDoc struct {
	Type      string `xml:"type,attr"`
	StoreData struct {
		Name     *string `xml:"name"`
		Brand    *string `xml:"brand"`
		Category *string `xml:"category"`
	} `xml:"storeData"`
	AttacherJoints      []jointDoc `xml:"attacherJoints>attacherJoint"`
	InputAttacherJoints []jointDoc `xml:"attachable>inputAttacherJoints>inputAttacherJoint"`
}

type jointDoc struct {
	JointType string `xml:"jointType,attr"`
}

// Parsed is a decoded vehicle document plus the joints that had to be dropped.
type Parsed struct {
	Vehicle *domain.Vehicle
	// Dropped counts attacher and input attacher joints without a jointType.
	Dropped int
}

// Parse decodes one vehicle document. Documents whose root element is not
// <vehicle> yield domain.ErrNotVehicle. Joints lacking a type are left out
// of the record and counted in Parsed.Dropped; when strict is set they make
// the document fail with domain.ErrMalformedRecord instead.
func Parse(r io.Reader, source string, strict bool) (Parsed, error) {
	dec := xml.NewDecoder(r)
	// Non-UTF-8 declarations such as iso-8859-1 or windows-1252 are
	// resolved through the WHATWG encoding labels.
	dec.CharsetReader = charset.NewReaderLabel

	start, err := rootElement(dec)
	if err != nil {
		return Parsed{}, err
	}
	if start.Name.Local != "vehicle" {
		return Parsed{}, fmt.Errorf("%w: root element <%s>", domain.ErrNotVehicle, start.Name.Local)
	}

	var doc vehicleDoc
	if err := dec.DecodeElement(&doc, &start); err != nil {
		return Parsed{}, fmt.Errorf("decode vehicle: %w", err)
	}
	if doc.StoreData.Name == nil {
		return Parsed{}, fmt.Errorf("%w: missing storeData/name", domain.ErrMalformedRecord)
	}
	if doc.StoreData.Brand == nil {
		return Parsed{}, fmt.Errorf("%w: missing storeData/brand", domain.ErrMalformedRecord)
	}

	attachers, droppedA := jointTypes(doc.AttacherJoints)
	inputs, droppedI := jointTypes(doc.InputAttacherJoints)
	dropped := droppedA + droppedI
	if strict && dropped > 0 {
		return Parsed{}, fmt.Errorf("%w: %d joint(s) without jointType", domain.ErrMalformedRecord, dropped)
	}

	v, err := domain.NewVehicle(domain.VehicleSpec{
		Brand:              text(doc.StoreData.Brand),
		Name:               text(doc.StoreData.Name),
		Kind:               doc.Type,
		StoreCategory:      text(doc.StoreData.Category),
		AttacherTypes:      attachers,
		InputAttacherTypes: inputs,
		Source:             source,
	})
	if err != nil {
		return Parsed{}, err
	}
	return Parsed{Vehicle: v, Dropped: dropped}, nil
}

func rootElement(dec *xml.Decoder) (xml.StartElement, error) {
	for {
		tok, err := dec.Token()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return xml.StartElement{}, fmt.Errorf("%w: empty document", domain.ErrNotVehicle)
			}
			return xml.StartElement{}, fmt.Errorf("read root element: %w", err)
		}
		if se, ok := tok.(xml.StartElement); ok {
			return se, nil
		}
	}
}

func jointTypes(joints []jointDoc) ([]string, int) {
	out := make([]string, 0, len(joints))
	dropped := 0
	for _, j := range joints {
		t := strings.TrimSpace(j.JointType)
		if t == "" {
			dropped++
			continue
		}
		out = append(out, t)
	}
	return out, dropped
}

func text(s *string) string {
	if s == nil {
		return ""
	}
	return strings.TrimSpace(*s)
}
