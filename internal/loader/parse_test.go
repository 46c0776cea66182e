package loader

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"attachsearch/internal/domain"
)

const tractorXML = `<?xml version="1.0" encoding="utf-8" standalone="no" ?>
<vehicle type="tractor">
    <storeData>
        <name>Pickup 2017</name>
        <brand>LIZARD</brand>
        <category>cars</category>
    </storeData>
    <attacherJoints>
        <attacherJoint jointType="trailer" />
        <attacherJoint jointType="trailerLow" />
        <attacherJoint />
    </attacherJoints>
    <attachable>
        <inputAttacherJoints>
            <inputAttacherJoint jointType="frontloader" />
        </inputAttacherJoints>
    </attachable>
</vehicle>`

func TestParse_Vehicle(t *testing.T) {
	p, err := Parse(strings.NewReader(tractorXML), "/data/pickup.xml", false)
	require.NoError(t, err)

	v := p.Vehicle
	assert.Equal(t, "LIZARD Pickup 2017", v.FullName())
	assert.Equal(t, "tractor", v.Kind())
	assert.Equal(t, "cars", v.StoreCategory())
	assert.Equal(t, []string{"trailer", "trailerLow"}, v.AttacherTypes())
	assert.Equal(t, []string{"frontloader"}, v.InputAttacherTypes())
	assert.Equal(t, "/data/pickup.xml", v.Source())
	assert.Equal(t, 1, p.Dropped)
}

func TestParse_StrictRejectsUntypedJoint(t *testing.T) {
	_, err := Parse(strings.NewReader(tractorXML), "x.xml", true)
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
}

func TestParse_UntypedInputJointDropped(t *testing.T) {
	doc := `<vehicle type="trailer"><storeData><name>T</name><brand>B</brand></storeData>
<attachable><inputAttacherJoints><inputAttacherJoint jointType=""/><inputAttacherJoint jointType="trailer"/></inputAttacherJoints></attachable></vehicle>`

	p, err := Parse(strings.NewReader(doc), "t.xml", false)
	require.NoError(t, err)
	assert.Equal(t, []string{"trailer"}, p.Vehicle.InputAttacherTypes())
	assert.Empty(t, p.Vehicle.AttacherTypes())
	assert.Empty(t, p.Vehicle.StoreCategory())
	assert.Equal(t, 1, p.Dropped)
}

func TestParse_NotVehicle(t *testing.T) {
	_, err := Parse(strings.NewReader(`<?xml version="1.0"?><shop><item/></shop>`), "shop.xml", false)
	assert.True(t, errors.Is(err, domain.ErrNotVehicle))

	_, err = Parse(strings.NewReader(""), "empty.xml", false)
	assert.True(t, errors.Is(err, domain.ErrNotVehicle))
}

func TestParse_MissingName(t *testing.T) {
	_, err := Parse(strings.NewReader(`<vehicle><storeData><brand>B</brand></storeData></vehicle>`), "n.xml", false)
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))

	_, err = Parse(strings.NewReader(`<vehicle><storeData><name>N</name></storeData></vehicle>`), "b.xml", false)
	assert.True(t, errors.Is(err, domain.ErrMalformedRecord))
}

func TestParse_BrokenXML(t *testing.T) {
	_, err := Parse(strings.NewReader(`<vehicle><storeData>`), "broken.xml", false)
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrNotVehicle))
}

func TestParse_Latin1(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"iso-8859-1\"?>" +
		"<vehicle type=\"trailer\"><storeData><name>M\xfcller</name><brand>K\xf6ckerling</brand></storeData></vehicle>"

	p, err := Parse(strings.NewReader(doc), "l.xml", false)
	require.NoError(t, err)
	assert.Equal(t, "Köckerling Müller", p.Vehicle.FullName())
}

func TestParse_Windows1252(t *testing.T) {
	doc := "<?xml version=\"1.0\" encoding=\"windows-1252\"?>" +
		"<vehicle type=\"trailer\"><storeData><name>Farmer\x92s \x80 Cart</name><brand>Fliegl</brand>" +
		"<category>trailers</category></storeData>" +
		"<attachable><inputAttacherJoints><inputAttacherJoint jointType=\"hitch\"/></inputAttacherJoints></attachable></vehicle>"

	p, err := Parse(strings.NewReader(doc), "w.xml", false)
	require.NoError(t, err)
	assert.Equal(t, "Fliegl Farmer\u2019s \u20ac Cart", p.Vehicle.FullName())
	assert.Equal(t, []string{"hitch"}, p.Vehicle.InputAttacherTypes())
}

func TestParse_UnsupportedCharset(t *testing.T) {
	doc := `<?xml version="1.0" encoding="x-no-such-charset"?><vehicle/>`
	_, err := Parse(strings.NewReader(doc), "s.xml", false)
	assert.Error(t, err)
}
