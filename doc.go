/*
Package seltools adds helpers on top of the github.com/tebeka/selenium
WebDriver client: flexible element lookup, waiting for elements to load,
filling in forms, selecting dropdown options and clicking with a fallback to
the element's link.

A Driver embeds selenium.WebDriver, so the full client API stays available.
NewFirefox and NewChrome start the browser driver executable and open a
session; Quit tears both down.

Lookups take a strategy and a value. The eight WebDriver strategies (such as
"id" or "css selector") are passed through, "text" matches on contained text,
and anything else is treated as an attribute name:

	d, err := seltools.NewFirefox(seltools.Headless(false))
	if err != nil {
		// ...
	}
	defer d.Quit()

	d.Get("https://www.wikipedia.org/")
	d.SelectDropdown("id", "searchLanguage", "English")
	d.FillInForm("id", "searchInput", "Selenium")
	d.ClickElement("data-jsl10n", "search-input-button", true)
*/
package seltools
