package csvframe

import (
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"listingdash/internal/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `id,name,host_id,host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,reviews_per_month,calculated_host_listings_count,availability_365
2539,Clean & quiet apt home by the park,2787,John,Brooklyn,Kensington,40.64749,-73.97237,Private room,149,1,9,2018-10-19,0.21,6,365
2595,Skylit Midtown Castle,2845,Jennifer,Manhattan,Midtown,40.75362,-73.98377,Entire home/apt,225,1,45,2019-05-21,0.38,2,355
3647,"THE VILLAGE OF HARLEM, NEW YORK !",4632,Elisabeth,Manhattan,Harlem,40.80902,-73.9419,Private room,150,3,0,,,1,365
`

func TestReadParsesTypedColumns(t *testing.T) {
	records, err := NewReader().Read(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, records, 3)

	first := records[0]
	assert.Equal(t, int64(2539), first.ID)
	assert.Equal(t, "John", first.HostName)
	assert.Equal(t, "Brooklyn", first.Borough)
	assert.Equal(t, "Kensington", first.Neighbourhood)
	assert.Equal(t, "Private room", first.RoomType)
	assert.Equal(t, 149.0, first.Price)
	assert.Equal(t, 1, first.MinimumNights)
	assert.Equal(t, 9, first.NumberOfReviews)
	assert.Equal(t, 365, first.Availability365)
	assert.InDelta(t, 40.64749, first.Latitude, 1e-9)
	assert.InDelta(t, -73.97237, first.Longitude, 1e-9)
	assert.Equal(t, "2018-10-19", first.LastReview)

	third := records[2]
	assert.Equal(t, "THE VILLAGE OF HARLEM, NEW YORK !", third.Name)
	assert.Equal(t, 0, third.NumberOfReviews)
	assert.Equal(t, "", third.LastReview)
}

func TestReadRejectsMissingColumns(t *testing.T) {
	_, err := NewReader().Read(strings.NewReader("price,room_type\n10,Private room\n"))
	require.Error(t, err)
	assert.Equal(t, errors.CodeInvalidInput, errors.GetCode(err))
	assert.Contains(t, err.Error(), "neighbourhood_group")
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "listings.csv")
	require.NoError(t, os.WriteFile(path, []byte(sampleCSV), 0o644))

	records, err := NewReader().ReadFile(path)
	require.NoError(t, err)
	assert.Len(t, records, 3)

	_, err = NewReader().ReadFile(filepath.Join(t.TempDir(), "absent.csv"))
	assert.Error(t, err)
}

func TestOrZero(t *testing.T) {
	assert.Equal(t, 0.0, orZero(math.NaN()))
	assert.Equal(t, 0.0, orZero(math.Inf(1)))
	assert.Equal(t, 3.5, orZero(3.5))
}

func TestReadMissingTextCellsAreBlank(t *testing.T) {
	input := `host_name,neighbourhood_group,neighbourhood,latitude,longitude,room_type,price,minimum_nights,number_of_reviews,last_review,availability_365
,Brooklyn,Bushwick,40.69,-73.92,Private room,80,1,0,,10
NA,Brooklyn,NaN,40.70,-73.93,Private room,90,1,0,NA,10
Ann,Manhattan,Harlem,40.81,-73.94,Entire home/apt,150,2,4,2019-01-02,10
`
	records, err := NewReader().Read(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "", records[0].HostName)
	assert.Equal(t, "", records[1].HostName)
	assert.Equal(t, "", records[1].Neighbourhood)
	assert.Equal(t, "", records[1].LastReview)
	assert.Equal(t, "Ann", records[2].HostName)
	assert.Equal(t, "Harlem", records[2].Neighbourhood)
}
