package consent

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/information-sharing-networks/xs2a-demo/app/internal/xs2a"
)

var (
	ibanA = xs2a.AccountReference{Iban: "DE89370400440532013000", Currency: "EUR"}
	ibanB = xs2a.AccountReference{Iban: "DE02120300000000202051", Currency: "EUR"}
	ibanC = xs2a.AccountReference{Iban: "DE75512108001245126199", Currency: "EUR"}
)

func testConsent(accounts ...xs2a.AccountReference) *Consent {
	return &Consent{
		ID:                 "consent-1",
		Type:               TypeAIS,
		Status:             xs2a.ConsentStatusReceived,
		RecurringIndicator: true,
		ValidUntil:         time.Date(2030, 1, 31, 0, 0, 0, 0, time.UTC),
		FrequencyPerDay:    4,
		TppAccess: xs2a.AccountAccess{
			Accounts:     accounts,
			Balances:     accounts,
			Transactions: accounts,
		},
	}
}

func algorithms() []ChecksumAlgorithm {
	return []ChecksumAlgorithm{ChecksumV1{}, ChecksumV2{}}
}

func TestChecksumRoundTrip(t *testing.T) {
	consents := map[string]*Consent{
		"single account":  testConsent(ibanA),
		"two accounts":    testConsent(ibanA, ibanB),
		"no accounts":     testConsent(),
		"zero valid date": {ID: "c", TppAccess: xs2a.AccountAccess{AllPsd2: xs2a.AccountAccessAllAccounts}},
		"all flags": {
			ID:                       "c",
			CombinedServiceIndicator: true,
			TppAccess: xs2a.AccountAccess{
				AvailableAccounts:            xs2a.AccountAccessAllAccounts,
				AvailableAccountsWithBalance: xs2a.AccountAccessAllAccountsWithOwnerName,
				AdditionalInformation: &xs2a.AdditionalInformationAccess{
					OwnerName: []xs2a.AccountReference{ibanA},
				},
			},
		},
	}

	for _, alg := range algorithms() {
		for name, c := range consents {
			t.Run(alg.Version()+" "+name, func(t *testing.T) {
				checksum, err := alg.Calculate(c)
				if err != nil {
					t.Fatalf("Calculate() error = %v", err)
				}
				if !strings.HasPrefix(string(checksum), alg.Version()+ChecksumDelimiter) {
					t.Errorf("checksum %q does not start with version tag %q", checksum, alg.Version())
				}
				if !alg.Verify(c, checksum) {
					t.Error("Verify() = false for the snapshot the checksum was calculated over")
				}

				again, err := alg.Calculate(c.Clone())
				if err != nil {
					t.Fatalf("Calculate() error = %v", err)
				}
				if !bytes.Equal(checksum, again) {
					t.Errorf("Calculate() is not deterministic: %q vs %q", checksum, again)
				}
			})
		}
	}
}

func TestChecksumTamperDetection(t *testing.T) {
	tests := []struct {
		name   string
		tamper func(c *Consent)
	}{
		{"account added", func(c *Consent) { c.TppAccess.Accounts = append(c.TppAccess.Accounts, ibanC) }},
		{"account removed", func(c *Consent) { c.TppAccess.Balances = c.TppAccess.Balances[:1] }},
		{"iban changed", func(c *Consent) { c.TppAccess.Transactions[0].Iban = ibanC.Iban }},
		{"currency changed", func(c *Consent) { c.TppAccess.Accounts[0].Currency = "USD" }},
		{"frequency changed", func(c *Consent) { c.FrequencyPerDay = 100 }},
		{"validity extended", func(c *Consent) { c.ValidUntil = c.ValidUntil.AddDate(1, 0, 0) }},
		{"recurring toggled", func(c *Consent) { c.RecurringIndicator = !c.RecurringIndicator }},
		{"combined service toggled", func(c *Consent) { c.CombinedServiceIndicator = !c.CombinedServiceIndicator }},
	}

	for _, alg := range algorithms() {
		for _, tt := range tests {
			t.Run(alg.Version()+" "+tt.name, func(t *testing.T) {
				c := testConsent(ibanA, ibanB)
				checksum, err := alg.Calculate(c)
				if err != nil {
					t.Fatalf("Calculate() error = %v", err)
				}

				tampered := c.Clone()
				tt.tamper(tampered)

				if alg.Verify(tampered, checksum) {
					t.Error("Verify() = true for a modified snapshot")
				}
			})
		}
	}
}

func TestChecksumV2CoversFieldsMissingFromV1(t *testing.T) {
	c := testConsent(ibanA)
	tampered := c.Clone()
	tampered.TppAccess.AllPsd2 = xs2a.AccountAccessAllAccounts

	v1, _ := ChecksumV1{}.Calculate(c)
	if !(ChecksumV1{}).Verify(tampered, v1) {
		t.Error("v1 should not cover the allPsd2 flag")
	}

	v2, _ := ChecksumV2{}.Calculate(c)
	if (ChecksumV2{}).Verify(tampered, v2) {
		t.Error("v2 should detect a change of the allPsd2 flag")
	}
}

func TestChecksumV2IgnoresReferenceOrder(t *testing.T) {
	c := testConsent(ibanA, ibanB)
	reordered := testConsent(ibanB, ibanA)

	v2, err := ChecksumV2{}.Calculate(c)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if !(ChecksumV2{}).Verify(reordered, v2) {
		t.Error("v2 should not depend on reference order")
	}

	v1, err := ChecksumV1{}.Calculate(c)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if (ChecksumV1{}).Verify(reordered, v1) {
		t.Error("v1 snapshots keep the stored reference order")
	}
}

func TestChecksumV2AspspAccessSegment(t *testing.T) {
	c := testConsent(ibanA)
	granted := ibanA
	granted.ResourceID = "res-1"
	c.AspspAccess = xs2a.AccountAccess{Accounts: []xs2a.AccountReference{granted}}

	checksum, err := ChecksumV2{}.Calculate(c)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if segments := strings.Split(string(checksum), ChecksumDelimiter); len(segments) != 3 {
		t.Fatalf("expected 3 segments when aspsp access is granted, got %d (%s)", len(segments), checksum)
	}
	if !(ChecksumV2{}).Verify(c, checksum) {
		t.Fatal("Verify() = false for unchanged consent")
	}

	changed := c.Clone()
	changed.AspspAccess.Accounts[0].ResourceID = "res-2"
	if (ChecksumV2{}).Verify(changed, checksum) {
		t.Error("Verify() should fail when a granted resource id changes")
	}

	extra := c.Clone()
	pan := xs2a.AccountReference{MaskedPan: "525412******3241", ResourceID: "card-1"}
	extra.AspspAccess.Balances = []xs2a.AccountReference{pan}
	if (ChecksumV2{}).Verify(extra, checksum) {
		t.Error("Verify() should fail when a new reference type is granted")
	}

	// references without a resource id are not part of the aspsp segment
	ungranted := testConsent(ibanA)
	ungranted.AspspAccess = xs2a.AccountAccess{Accounts: []xs2a.AccountReference{ibanA}}
	plain, err := ChecksumV2{}.Calculate(ungranted)
	if err != nil {
		t.Fatalf("Calculate() error = %v", err)
	}
	if segments := strings.Split(string(plain), ChecksumDelimiter); len(segments) != 2 {
		t.Errorf("expected 2 segments without granted references, got %d", len(segments))
	}
}

func TestChecksumVerifyRejectsMalformedValues(t *testing.T) {
	c := testConsent(ibanA)
	v1, _ := ChecksumV1{}.Calculate(c)
	v2, _ := ChecksumV2{}.Calculate(c)

	tests := []struct {
		name     string
		alg      ChecksumAlgorithm
		checksum []byte
	}{
		{"v1 nil", ChecksumV1{}, nil},
		{"v1 no delimiter", ChecksumV1{}, []byte("v1")},
		{"v1 empty digest", ChecksumV1{}, []byte("v1;")},
		{"v1 given v2 checksum", ChecksumV1{}, v2},
		{"v2 given v1 checksum", ChecksumV2{}, v1},
		{"v2 bad aspsp segment", ChecksumV2{}, append(v2, []byte(";not-base64!")...)},
		{"v1 extra segment", ChecksumV1{}, append(v1, []byte(";extra")...)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.alg.Verify(c, tt.checksum) {
				t.Errorf("Verify(%q) = true, want false", tt.checksum)
			}
		})
	}

	if (ChecksumV2{}).Verify(nil, v2) {
		t.Error("Verify(nil) = true, want false")
	}
	if _, err := (ChecksumV2{}).Calculate(nil); err == nil {
		t.Error("Calculate(nil) should return an error")
	}
}
