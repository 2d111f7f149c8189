package bluetooth

// LookupManufacturer names the vendor behind a Bluetooth SIG company ID,
// used to label advertisers that carry no local name.
func LookupManufacturer(companyID uint16) string {
	return companyNames[companyID]
}

// Radio and module vendors that TOF sensor boards are commonly built on,
// plus the phones and wearables that crowd the scan list.
var companyNames = map[uint16]string{
	// modules
	0x0059: "Nordic",
	0x000D: "Texas Inst.",
	0x015D: "Espressif",
	0x0499: "Ruuvi",
	0x000A: "Qualcomm",
	0x000F: "Broadcom",
	0x00AA: "Realtek",
	0x0002: "Intel",

	// noise
	0x004C: "Apple",
	0x0006: "Microsoft",
	0x00E0: "Google",
	0x0075: "Samsung",
	0x0310: "Xiaomi",
	0x038F: "Garmin",
	0x03DA: "Fitbit",
	0x02FF: "Tile",
}
